package router

import (
	"github.com/labstack/echo/v4"

	"taskhive/internal/adapter/api/handler"
	"taskhive/internal/adapter/api/middleware"
)

// Handlers bundles every HTTP handler the router wires up.
type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Task           *handler.TaskHandler
	Bid            *handler.BidHandler
	Recommendation *handler.RecommendationHandler
	Progress       *handler.ProgressHandler
	Rating         *handler.RatingHandler
	Notification   *handler.NotificationHandler
	Calendar       *handler.CalendarHandler
	WebSocket      *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	SetupHealthRouter(e)
	SetupAuthRouter(e, h.Auth)
	SetupUserRouter(e, h.User, authMiddleware)
	SetupTaskRouter(e, h.Task, authMiddleware, roleMiddleware)
	SetupBidRouter(e, h.Bid, authMiddleware, roleMiddleware)
	SetupRecommendationRouter(e, h.Recommendation, authMiddleware)
	SetupProgressRouter(e, h.Progress, authMiddleware)
	SetupRatingRouter(e, h.Rating, authMiddleware)
	SetupNotificationRouter(e, h.Notification, authMiddleware)
	SetupCalendarRouter(e, h.Calendar, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
}

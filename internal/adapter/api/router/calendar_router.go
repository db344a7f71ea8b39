package router

import (
	"github.com/labstack/echo/v4"

	"taskhive/internal/adapter/api/handler"
	"taskhive/internal/adapter/api/middleware"
)

func SetupCalendarRouter(e *echo.Echo, calendarHandler *handler.CalendarHandler, authMiddleware *middleware.AuthMiddleware) {
	events := e.Group("/v1/calendar/events")
	events.Use(authMiddleware.Authenticate)

	events.POST("", calendarHandler.CreateEvent)
	events.GET("", calendarHandler.ListEvents)
	events.PATCH("/:id", calendarHandler.UpdateEvent)
	events.DELETE("/:id", calendarHandler.DeleteEvent)
}

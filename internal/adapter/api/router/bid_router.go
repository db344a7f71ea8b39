package router

import (
	"github.com/labstack/echo/v4"

	"taskhive/internal/adapter/api/handler"
	"taskhive/internal/adapter/api/middleware"
)

func SetupBidRouter(e *echo.Echo, bidHandler *handler.BidHandler, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	taskBids := e.Group("/v1/tasks/:taskId/bids")
	taskBids.Use(authMiddleware.Authenticate)
	taskBids.Use(roleMiddleware.LoadRole)

	taskBids.POST("", bidHandler.PlaceBid)
	taskBids.GET("", bidHandler.ListBids)

	bids := e.Group("/v1/bids")
	bids.Use(authMiddleware.Authenticate)
	bids.Use(roleMiddleware.LoadRole)

	bids.GET("/mine", bidHandler.ListMyBids)
	bids.POST("/:bidId/accept", bidHandler.AcceptBid)
	bids.POST("/:bidId/reject", bidHandler.RejectBid)
}

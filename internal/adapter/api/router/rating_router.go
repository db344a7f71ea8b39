package router

import (
	"github.com/labstack/echo/v4"

	"taskhive/internal/adapter/api/handler"
	"taskhive/internal/adapter/api/middleware"
)

func SetupRatingRouter(e *echo.Echo, ratingHandler *handler.RatingHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/v1/users/:id/ratings", ratingHandler.ListUserRatings)

	ratings := e.Group("/v1")
	ratings.Use(authMiddleware.Authenticate)

	ratings.POST("/tasks/:taskId/ratings", ratingHandler.UpsertRating)
	ratings.POST("/ratings/:ratingId/helpful", ratingHandler.ToggleHelpfulVote)
}

package router

import (
	"github.com/labstack/echo/v4"

	"taskhive/internal/adapter/api/handler"
	"taskhive/internal/adapter/api/middleware"
)

func SetupRecommendationRouter(e *echo.Echo, recommendationHandler *handler.RecommendationHandler, authMiddleware *middleware.AuthMiddleware) {
	recs := e.Group("/v1/recommendations")
	recs.Use(authMiddleware.Authenticate)

	recs.GET("/tasks", recommendationHandler.RecommendTasks)
	recs.GET("/tasks/priority", recommendationHandler.RecommendTasksByPriority)

	taskRecs := e.Group("/v1/tasks/:taskId/recommendations")
	taskRecs.Use(authMiddleware.Authenticate)

	taskRecs.GET("/freelancers", recommendationHandler.RecommendFreelancers)

	feed := e.Group("/v1/feed")
	feed.Use(authMiddleware.Authenticate)

	feed.GET("", recommendationHandler.PersonalizedFeed)
}

package router

import (
	"github.com/labstack/echo/v4"

	"taskhive/internal/adapter/api/handler"
	"taskhive/internal/adapter/api/middleware"
)

func SetupProgressRouter(e *echo.Echo, progressHandler *handler.ProgressHandler, authMiddleware *middleware.AuthMiddleware) {
	progress := e.Group("/v1/tasks/:taskId/progress")
	progress.Use(authMiddleware.Authenticate)

	progress.PUT("", progressHandler.UpsertProgress)
	progress.GET("", progressHandler.GetProgress)
	progress.PATCH("/milestones/:index", progressHandler.UpdateMilestone)
}

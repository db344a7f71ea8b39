package router

import (
	"github.com/labstack/echo/v4"

	"taskhive/internal/adapter/api/handler"
	"taskhive/internal/adapter/api/middleware"
)

// SetupTaskRouter registers task CRUD routes. Listing and reading single
// tasks stay public; mutations require an authenticated user with a role.
func SetupTaskRouter(e *echo.Echo, taskHandler *handler.TaskHandler, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	e.GET("/v1/tasks", taskHandler.ListTasks)
	e.GET("/v1/tasks/:id", taskHandler.GetTask)

	tasks := e.Group("/v1/tasks")
	tasks.Use(authMiddleware.Authenticate)
	tasks.Use(roleMiddleware.LoadRole)

	tasks.POST("", taskHandler.CreateTask)
	tasks.PATCH("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)
}

package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"taskhive/internal/usecase"
	"taskhive/pkg/errors"
	"taskhive/pkg/response"
	"taskhive/pkg/utils"
)

type TaskHandler struct {
	taskUseCase *usecase.TaskUseCase
}

func NewTaskHandler(taskUseCase *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
	}
}

type createTaskRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required"`
	Budget      *float64  `json:"budget,omitempty" validate:"omitempty,gt=0"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Status      string    `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	role := c.Get("role").(string)

	task, err := h.taskUseCase.CreateTask(c.Request().Context(), userID, role, usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Category:    req.Category,
		Tags:        req.Tags,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, task)
}

func (h *TaskHandler) ListTasks(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	tasks, total, err := h.taskUseCase.ListTasks(
		c.Request().Context(),
		c.QueryParam("status"),
		c.QueryParam("category"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, tasks, total, pagination.Page, pagination.PageSize)
}

func (h *TaskHandler) GetTask(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	task, err := h.taskUseCase.GetTask(c.Request().Context(), taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

type updateTaskRequest struct {
	Title       string     `json:"title,omitempty" validate:"omitempty,max=200"`
	Description string     `json:"description,omitempty"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,gt=0"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

func (h *TaskHandler) UpdateTask(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	task, err := h.taskUseCase.UpdateTask(c.Request().Context(), taskID, userID, usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Category:    req.Category,
		Tags:        req.Tags,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) DeleteTask(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	userID := c.Get("uid").(string)

	if err := h.taskUseCase.DeleteTask(c.Request().Context(), taskID, userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

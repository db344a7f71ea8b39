package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"taskhive/internal/usecase"
	"taskhive/pkg/errors"
	"taskhive/pkg/response"
)

type ProgressHandler struct {
	progressUseCase *usecase.ProgressUseCase
}

func NewProgressHandler(progressUseCase *usecase.ProgressUseCase) *ProgressHandler {
	return &ProgressHandler{
		progressUseCase: progressUseCase,
	}
}

type milestoneRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Status      string    `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed overdue"`
}

type upsertProgressRequest struct {
	Milestones []milestoneRequest `json:"milestones" validate:"required,dive"`
}

func (h *ProgressHandler) UpsertProgress(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	var req upsertProgressRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	milestones := make([]usecase.MilestoneInput, 0, len(req.Milestones))
	for _, m := range req.Milestones {
		milestones = append(milestones, usecase.MilestoneInput{
			Title:       m.Title,
			Description: m.Description,
			DueDate:     m.DueDate,
			Status:      m.Status,
		})
	}

	progress, err := h.progressUseCase.UpsertProgress(c.Request().Context(), taskID, userID, milestones)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

func (h *ProgressHandler) GetProgress(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	progress, err := h.progressUseCase.GetProgress(c.Request().Context(), taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

type updateMilestoneRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed overdue"`
}

func (h *ProgressHandler) UpdateMilestone(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return response.Error(c, errors.BadRequest("Invalid milestone index", nil))
	}

	var req updateMilestoneRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	progress, err := h.progressUseCase.UpdateMilestoneStatus(c.Request().Context(), taskID, index, userID, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

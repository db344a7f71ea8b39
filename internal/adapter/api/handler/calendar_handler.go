package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"taskhive/internal/usecase"
	"taskhive/pkg/errors"
	"taskhive/pkg/response"
)

type CalendarHandler struct {
	calendarUseCase *usecase.CalendarUseCase
}

func NewCalendarHandler(calendarUseCase *usecase.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{
		calendarUseCase: calendarUseCase,
	}
}

type calendarEventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=deadline meeting reminder"`
	TaskID      string    `json:"task_id,omitempty"`
}

func (h *CalendarHandler) CreateEvent(c echo.Context) error {
	var req calendarEventRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	event, err := h.calendarUseCase.CreateEvent(c.Request().Context(), userID, usecase.CalendarEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Type:        req.Type,
		TaskID:      req.TaskID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, event)
}

func (h *CalendarHandler) ListEvents(c echo.Context) error {
	userID := c.Get("uid").(string)

	var from, to time.Time
	if v := c.QueryParam("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid from timestamp", nil))
		}
		from = parsed
	}
	if v := c.QueryParam("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid to timestamp", nil))
		}
		to = parsed
	}

	events, err := h.calendarUseCase.ListEvents(c.Request().Context(), userID, from, to)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, events)
}

type updateCalendarEventRequest struct {
	Title       string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time,omitempty"`
	EndTime     time.Time `json:"end_time,omitempty"`
	Type        string    `json:"type,omitempty" validate:"omitempty,oneof=deadline meeting reminder"`
	TaskID      string    `json:"task_id,omitempty"`
}

func (h *CalendarHandler) UpdateEvent(c echo.Context) error {
	eventID := c.Param("id")
	if eventID == "" {
		return response.Error(c, errors.BadRequest("Event ID is required", nil))
	}

	var req updateCalendarEventRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	event, err := h.calendarUseCase.UpdateEvent(c.Request().Context(), eventID, userID, usecase.CalendarEventInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Type:        req.Type,
		TaskID:      req.TaskID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, event)
}

func (h *CalendarHandler) DeleteEvent(c echo.Context) error {
	eventID := c.Param("id")
	if eventID == "" {
		return response.Error(c, errors.BadRequest("Event ID is required", nil))
	}

	userID := c.Get("uid").(string)

	if err := h.calendarUseCase.DeleteEvent(c.Request().Context(), eventID, userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"taskhive/internal/usecase"
	"taskhive/pkg/errors"
	"taskhive/pkg/response"
)

type RecommendationHandler struct {
	recommendationUseCase *usecase.RecommendationUseCase
}

func NewRecommendationHandler(recommendationUseCase *usecase.RecommendationUseCase) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUseCase: recommendationUseCase,
	}
}

func (h *RecommendationHandler) RecommendTasks(c echo.Context) error {
	userID := c.Get("uid").(string)

	result, err := h.recommendationUseCase.RecommendTasks(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *RecommendationHandler) RecommendTasksByPriority(c echo.Context) error {
	userID := c.Get("uid").(string)

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return response.Error(c, errors.BadRequest("Invalid limit value", nil))
		}
	}

	result, err := h.recommendationUseCase.RecommendTasksByPriority(c.Request().Context(), userID, usecase.PriorityFilters{
		Difficulty: c.QueryParam("difficulty"),
		Priority:   c.QueryParam("priority"),
		Category:   c.QueryParam("category"),
		Limit:      limit,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *RecommendationHandler) RecommendFreelancers(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return response.Error(c, errors.BadRequest("Invalid limit value", nil))
		}
	}

	result, err := h.recommendationUseCase.RecommendFreelancers(c.Request().Context(), taskID, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *RecommendationHandler) PersonalizedFeed(c echo.Context) error {
	userID := c.Get("uid").(string)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	var minBudget, maxBudget *float64
	if v := c.QueryParam("minBudget"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid minBudget value", nil))
		}
		minBudget = &parsed
	}
	if v := c.QueryParam("maxBudget"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.Error(c, errors.BadRequest("Invalid maxBudget value", nil))
		}
		maxBudget = &parsed
	}

	feed, err := h.recommendationUseCase.PersonalizedFeed(c.Request().Context(), userID, usecase.FeedInput{
		Page:      page,
		Limit:     limit,
		Category:  c.QueryParam("category"),
		MinBudget: minBudget,
		MaxBudget: maxBudget,
		SortBy:    c.QueryParam("sortBy"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, feed)
}

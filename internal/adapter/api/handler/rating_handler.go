package handler

import (
	"github.com/labstack/echo/v4"

	"taskhive/internal/usecase"
	"taskhive/pkg/errors"
	"taskhive/pkg/response"
	"taskhive/pkg/utils"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewRatingHandler(ratingUseCase *usecase.RatingUseCase) *RatingHandler {
	return &RatingHandler{
		ratingUseCase: ratingUseCase,
	}
}

type upsertRatingRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Review     string `json:"review,omitempty" validate:"omitempty,max=1000"`
	RevieweeID string `json:"reviewee_id,omitempty"`
	IsPublic   *bool  `json:"is_public,omitempty"`
}

func (h *RatingHandler) UpsertRating(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	var req upsertRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reviewerID := c.Get("uid").(string)

	rating, err := h.ratingUseCase.UpsertRating(c.Request().Context(), taskID, reviewerID, usecase.UpsertRatingInput{
		Rating:     req.Rating,
		Review:     req.Review,
		RevieweeID: req.RevieweeID,
		IsPublic:   req.IsPublic,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, rating)
}

func (h *RatingHandler) ListUserRatings(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	pagination := utils.GetPaginationParams(c)

	ratings, total, err := h.ratingUseCase.ListUserRatings(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, ratings, total, pagination.Page, pagination.PageSize)
}

func (h *RatingHandler) ToggleHelpfulVote(c echo.Context) error {
	ratingID := c.Param("ratingId")
	if ratingID == "" {
		return response.Error(c, errors.BadRequest("Rating ID is required", nil))
	}

	userID := c.Get("uid").(string)

	result, err := h.ratingUseCase.ToggleHelpfulVote(c.Request().Context(), ratingID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

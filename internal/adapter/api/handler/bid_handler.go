package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"taskhive/internal/usecase"
	"taskhive/pkg/errors"
	"taskhive/pkg/response"
	"taskhive/pkg/utils"
)

type BidHandler struct {
	bidUseCase *usecase.BidUseCase
}

func NewBidHandler(bidUseCase *usecase.BidUseCase) *BidHandler {
	return &BidHandler{
		bidUseCase: bidUseCase,
	}
}

type placeBidRequest struct {
	BidAmount           float64   `json:"bid_amount" validate:"required,gt=0"`
	EstimatedCompletion time.Time `json:"estimated_completion" validate:"required"`
	Message             string    `json:"message,omitempty" validate:"omitempty,max=2000"`
}

func (h *BidHandler) PlaceBid(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	bidderID := c.Get("uid").(string)

	bid, err := h.bidUseCase.PlaceBid(c.Request().Context(), taskID, bidderID, usecase.PlaceBidInput{
		BidAmount:           req.BidAmount,
		EstimatedCompletion: req.EstimatedCompletion,
		Message:             req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, bid)
}

func (h *BidHandler) ListBids(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return response.Error(c, errors.BadRequest("Task ID is required", nil))
	}

	bids, err := h.bidUseCase.ListBids(c.Request().Context(), taskID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bids)
}

func (h *BidHandler) ListMyBids(c echo.Context) error {
	bidderID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	bids, total, err := h.bidUseCase.ListMyBids(c.Request().Context(), bidderID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, bids, total, pagination.Page, pagination.PageSize)
}

func (h *BidHandler) AcceptBid(c echo.Context) error {
	bidID := c.Param("bidId")
	if bidID == "" {
		return response.Error(c, errors.BadRequest("Bid ID is required", nil))
	}

	userID := c.Get("uid").(string)
	role := c.Get("role").(string)

	result, err := h.bidUseCase.AcceptBid(c.Request().Context(), bidID, userID, role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *BidHandler) RejectBid(c echo.Context) error {
	bidID := c.Param("bidId")
	if bidID == "" {
		return response.Error(c, errors.BadRequest("Bid ID is required", nil))
	}

	userID := c.Get("uid").(string)
	role := c.Get("role").(string)

	bid, err := h.bidUseCase.RejectBid(c.Request().Context(), bidID, userID, role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, bid)
}

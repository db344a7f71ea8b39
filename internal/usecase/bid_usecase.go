package usecase

import (
	"context"
	"time"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/pkg/errors"
)

type BidUseCase struct {
	bidRepo    repository.BidRepository
	taskRepo   repository.TaskRepository
	dispatcher *NotificationDispatcher
}

func NewBidUseCase(
	bidRepo repository.BidRepository,
	taskRepo repository.TaskRepository,
	dispatcher *NotificationDispatcher,
) *BidUseCase {
	return &BidUseCase{
		bidRepo:    bidRepo,
		taskRepo:   taskRepo,
		dispatcher: dispatcher,
	}
}

type PlaceBidInput struct {
	BidAmount           float64
	EstimatedCompletion time.Time
	Message             string
}

func (uc *BidUseCase) PlaceBid(ctx context.Context, taskID, bidderID string, input PlaceBidInput) (*entity.Bid, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.PostedBy == bidderID {
		return nil, errors.Forbidden("You cannot bid on your own task", nil)
	}

	bid := &entity.Bid{
		TaskID:              taskID,
		BidderID:            bidderID,
		BidAmount:           input.BidAmount,
		EstimatedCompletion: input.EstimatedCompletion,
		Message:             input.Message,
		Status:              entity.BidStatusPending,
	}

	if err := uc.bidRepo.Create(ctx, bid); err != nil {
		return nil, err
	}

	return bid, nil
}

func (uc *BidUseCase) ListBids(ctx context.Context, taskID string) ([]*entity.Bid, error) {
	if _, err := uc.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	return uc.bidRepo.ListByTask(ctx, taskID)
}

func (uc *BidUseCase) ListMyBids(ctx context.Context, bidderID string, page, limit int) ([]*entity.Bid, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.bidRepo.ListByBidder(ctx, bidderID, limit, offset)
}

type AcceptBidResult struct {
	Task *entity.Task `json:"task"`
	Bid  *entity.Bid  `json:"bid"`
}

// AcceptBid accepts one bid, rejects every competitor, and assigns the
// task, all in a single store transaction. The acting user must be a task
// poster and must own the task the bid targets.
func (uc *BidUseCase) AcceptBid(ctx context.Context, bidID, actingUserID, actingRole string) (*AcceptBidResult, error) {
	if actingRole != entity.RoleTaskPoster {
		return nil, errors.Forbidden("Only task posters can accept bids", nil)
	}

	bid, task, err := uc.bidRepo.Accept(ctx, bidID, actingUserID)
	if err != nil {
		return nil, err
	}

	uc.dispatcher.BidAccepted(task, bid)

	return &AcceptBidResult{
		Task: task,
		Bid:  bid,
	}, nil
}

func (uc *BidUseCase) RejectBid(ctx context.Context, bidID, actingUserID, actingRole string) (*entity.Bid, error) {
	if actingRole != entity.RoleTaskPoster {
		return nil, errors.Forbidden("Only task posters can reject bids", nil)
	}

	bid, err := uc.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	task, err := uc.taskRepo.GetByID(ctx, bid.TaskID)
	if err != nil {
		return nil, err
	}

	if task.PostedBy != actingUserID {
		return nil, errors.Forbidden("Only the task poster can reject bids on this task", nil)
	}

	if bid.Status == entity.BidStatusAccepted {
		return nil, errors.Conflict("Accepted bids cannot be rejected")
	}

	bid.Status = entity.BidStatusRejected
	if err := uc.bidRepo.Update(ctx, bid); err != nil {
		return nil, err
	}

	return bid, nil
}

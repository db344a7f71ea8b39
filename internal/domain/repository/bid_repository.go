package repository

import (
	"context"

	"taskhive/internal/domain/entity"
)

type BidRepository interface {
	Create(ctx context.Context, bid *entity.Bid) error
	GetByID(ctx context.Context, id string) (*entity.Bid, error)
	Update(ctx context.Context, bid *entity.Bid) error
	ListByTask(ctx context.Context, taskID string) ([]*entity.Bid, error)
	ListByBidder(ctx context.Context, bidderID string, limit, offset int) ([]*entity.Bid, int64, error)

	// Accept atomically accepts the bid, rejects every sibling bid on the
	// same task, and assigns the task to the bidder. The whole sequence runs
	// in one store transaction conditioned on both the bid and the task
	// still being PENDING, and on posterID owning the task.
	Accept(ctx context.Context, bidID, posterID string) (*entity.Bid, *entity.Task, error)
}

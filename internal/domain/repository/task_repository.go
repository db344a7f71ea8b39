package repository

import (
	"context"

	"taskhive/internal/domain/entity"
)

// TaskQuery collects the filters for open-task feeds: exact-match filters,
// an optional budget range, and the usual sort/page knobs.
type TaskQuery struct {
	Filter    map[string]interface{}
	MinBudget *float64
	MaxBudget *float64
	Sort      string
	Limit     int
	Offset    int
}

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Task, int64, error)

	// ListOpenForBidding returns PENDING tasks not posted by excludeUserID.
	ListOpenForBidding(ctx context.Context, excludeUserID string, query TaskQuery) ([]*entity.Task, int64, error)
}

package repository

import (
	"context"

	"taskhive/internal/domain/entity"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	GetByID(ctx context.Context, id string) (*entity.Rating, error)
	GetByTaskAndReviewer(ctx context.Context, taskID, reviewerID string) (*entity.Rating, error)
	Update(ctx context.Context, rating *entity.Rating) error
	ListByReviewee(ctx context.Context, revieweeID string, publicOnly bool, limit, offset int) ([]*entity.Rating, int64, error)
}

package repository

import (
	"context"

	"taskhive/internal/domain/entity"
)

type ProgressRepository interface {
	GetByTaskID(ctx context.Context, taskID string) (*entity.Progress, error)
	Upsert(ctx context.Context, progress *entity.Progress) error
}

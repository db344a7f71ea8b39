package repository

import (
	"context"
	"time"

	"taskhive/internal/domain/entity"
)

type CalendarRepository interface {
	Create(ctx context.Context, event *entity.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*entity.CalendarEvent, error)
	Update(ctx context.Context, event *entity.CalendarEvent) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]*entity.CalendarEvent, error)
}

package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/pkg/errors"
)

type firestoreCalendarRepository struct {
	client *firestore.Client
}

func NewFirestoreCalendarRepository(client *firestore.Client) repository.CalendarRepository {
	return &firestoreCalendarRepository{
		client: client,
	}
}

func (r *firestoreCalendarRepository) Create(ctx context.Context, event *entity.CalendarEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	now := time.Now()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	_, err := r.client.Collection("calendar_events").Doc(event.ID).Set(ctx, event)
	if err != nil {
		return errors.Internal("Failed to create calendar event", err)
	}

	return nil
}

func (r *firestoreCalendarRepository) GetByID(ctx context.Context, id string) (*entity.CalendarEvent, error) {
	doc, err := r.client.Collection("calendar_events").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Calendar event", err)
		}
		return nil, errors.Unavailable("Failed to get calendar event", err)
	}

	var event entity.CalendarEvent
	if err := doc.DataTo(&event); err != nil {
		return nil, errors.Internal("Failed to parse calendar event data", err)
	}

	return &event, nil
}

func (r *firestoreCalendarRepository) Update(ctx context.Context, event *entity.CalendarEvent) error {
	event.UpdatedAt = time.Now()

	_, err := r.client.Collection("calendar_events").Doc(event.ID).Set(ctx, event)
	if err != nil {
		return errors.Internal("Failed to update calendar event", err)
	}

	return nil
}

func (r *firestoreCalendarRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("calendar_events").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete calendar event", err)
	}

	return nil
}

func (r *firestoreCalendarRepository) ListByUser(ctx context.Context, userID string, from, to time.Time) ([]*entity.CalendarEvent, error) {
	query := r.client.Collection("calendar_events").Query.Where("userId", "==", userID)
	if !from.IsZero() {
		query = query.Where("startTime", ">=", from)
	}
	if !to.IsZero() {
		query = query.Where("startTime", "<=", to)
	}
	query = query.OrderBy("startTime", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var events []*entity.CalendarEvent
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Unavailable("Failed to iterate calendar events", err)
		}
		var event entity.CalendarEvent
		if err := doc.DataTo(&event); err != nil {
			return nil, errors.Internal("Failed to parse calendar event data", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

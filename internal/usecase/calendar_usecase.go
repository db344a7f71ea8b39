package usecase

import (
	"context"
	"time"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/pkg/errors"
)

type CalendarUseCase struct {
	calendarRepo repository.CalendarRepository
}

func NewCalendarUseCase(calendarRepo repository.CalendarRepository) *CalendarUseCase {
	return &CalendarUseCase{
		calendarRepo: calendarRepo,
	}
}

type CalendarEventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Type        string
	TaskID      string
}

func (uc *CalendarUseCase) CreateEvent(ctx context.Context, userID string, input CalendarEventInput) (*entity.CalendarEvent, error) {
	if !entity.ValidCalendarEventType(input.Type) {
		return nil, errors.BadRequest("Invalid event type", nil)
	}
	if input.EndTime.Before(input.StartTime) {
		return nil, errors.BadRequest("Event cannot end before it starts", nil)
	}

	event := &entity.CalendarEvent{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Type:        input.Type,
		TaskID:      input.TaskID,
	}

	if err := uc.calendarRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (uc *CalendarUseCase) ListEvents(ctx context.Context, userID string, from, to time.Time) ([]*entity.CalendarEvent, error) {
	return uc.calendarRepo.ListByUser(ctx, userID, from, to)
}

func (uc *CalendarUseCase) UpdateEvent(ctx context.Context, eventID, userID string, input CalendarEventInput) (*entity.CalendarEvent, error) {
	event, err := uc.calendarRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.UserID != userID {
		return nil, errors.Forbidden("This event belongs to another user", nil)
	}

	if input.Title != "" {
		event.Title = input.Title
	}
	event.Description = input.Description
	if !input.StartTime.IsZero() {
		event.StartTime = input.StartTime
	}
	if !input.EndTime.IsZero() {
		event.EndTime = input.EndTime
	}
	if input.Type != "" {
		if !entity.ValidCalendarEventType(input.Type) {
			return nil, errors.BadRequest("Invalid event type", nil)
		}
		event.Type = input.Type
	}
	if event.EndTime.Before(event.StartTime) {
		return nil, errors.BadRequest("Event cannot end before it starts", nil)
	}

	if err := uc.calendarRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (uc *CalendarUseCase) DeleteEvent(ctx context.Context, eventID, userID string) error {
	event, err := uc.calendarRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	if event.UserID != userID {
		return errors.Forbidden("This event belongs to another user", nil)
	}

	return uc.calendarRepo.Delete(ctx, eventID)
}

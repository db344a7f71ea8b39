package usecase

import (
	"context"
	"time"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/pkg/errors"
)

type ProgressUseCase struct {
	progressRepo repository.ProgressRepository
	taskRepo     repository.TaskRepository
}

func NewProgressUseCase(
	progressRepo repository.ProgressRepository,
	taskRepo repository.TaskRepository,
) *ProgressUseCase {
	return &ProgressUseCase{
		progressRepo: progressRepo,
		taskRepo:     taskRepo,
	}
}

type MilestoneInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      string
}

func (uc *ProgressUseCase) requireParticipant(ctx context.Context, taskID, userID string) (*entity.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.PostedBy != userID && task.AssignedTo != userID {
		return nil, errors.Forbidden("Only the task poster or assignee can manage progress", nil)
	}

	return task, nil
}

// UpsertProgress replaces the milestone list for a task and rederives the
// aggregate. Milestone order is reassigned sequentially.
func (uc *ProgressUseCase) UpsertProgress(ctx context.Context, taskID, actingUserID string, milestones []MilestoneInput) (*entity.Progress, error) {
	if _, err := uc.requireParticipant(ctx, taskID, actingUserID); err != nil {
		return nil, err
	}

	progress, err := uc.progressRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		progress = &entity.Progress{TaskID: taskID}
	}

	items := make([]entity.Milestone, 0, len(milestones))
	for i, m := range milestones {
		status := m.Status
		if status == "" {
			status = entity.MilestonePending
		}
		if !entity.ValidMilestoneStatus(status) {
			return nil, errors.BadRequest("Invalid milestone status", nil)
		}

		milestone := entity.Milestone{
			Title:       m.Title,
			Description: m.Description,
			DueDate:     m.DueDate,
			Status:      status,
			Order:       i,
		}
		if status == entity.MilestoneCompleted {
			now := time.Now()
			milestone.CompletedAt = &now
			milestone.CompletedBy = actingUserID
		}
		items = append(items, milestone)
	}

	progress.Milestones = items
	progress.Recompute()

	if err := uc.progressRepo.Upsert(ctx, progress); err != nil {
		return nil, err
	}

	return progress, nil
}

func (uc *ProgressUseCase) GetProgress(ctx context.Context, taskID string) (*entity.Progress, error) {
	return uc.progressRepo.GetByTaskID(ctx, taskID)
}

// UpdateMilestoneStatus sets one milestone's status and rederives the
// aggregate. Completion stamps the actor and time; leaving the completed
// state clears both.
func (uc *ProgressUseCase) UpdateMilestoneStatus(ctx context.Context, taskID string, index int, actingUserID, newStatus string) (*entity.Progress, error) {
	if !entity.ValidMilestoneStatus(newStatus) {
		return nil, errors.BadRequest("Invalid milestone status", nil)
	}

	if _, err := uc.requireParticipant(ctx, taskID, actingUserID); err != nil {
		return nil, err
	}

	progress, err := uc.progressRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(progress.Milestones) {
		return nil, errors.NotFound("Milestone", nil)
	}

	milestone := &progress.Milestones[index]
	milestone.Status = newStatus
	if newStatus == entity.MilestoneCompleted {
		now := time.Now()
		milestone.CompletedAt = &now
		milestone.CompletedBy = actingUserID
	} else {
		milestone.CompletedAt = nil
		milestone.CompletedBy = ""
	}

	progress.Recompute()

	if err := uc.progressRepo.Upsert(ctx, progress); err != nil {
		return nil, err
	}

	return progress, nil
}

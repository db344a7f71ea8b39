package usecase

import (
	"context"
	"time"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/internal/scoring"
	"taskhive/pkg/errors"
)

type TaskUseCase struct {
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	dispatcher *NotificationDispatcher
}

func NewTaskUseCase(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	dispatcher *NotificationDispatcher,
) *TaskUseCase {
	return &TaskUseCase{
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Budget      *float64
	Deadline    time.Time
	Category    string
	Tags        []string
	Status      string
}

func (uc *TaskUseCase) CreateTask(ctx context.Context, posterID, posterRole string, input CreateTaskInput) (*entity.Task, error) {
	if posterRole != entity.RoleTaskPoster {
		return nil, errors.Forbidden("Only task posters can create tasks", nil)
	}

	status := input.Status
	if status == "" {
		status = entity.TaskStatusPending
	}
	switch status {
	case entity.TaskStatusPending, entity.TaskStatusInProgress, entity.TaskStatusCompleted:
	default:
		return nil, errors.BadRequest("Invalid task status", nil)
	}

	task := &entity.Task{
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		Deadline:    input.Deadline,
		Status:      status,
		PostedBy:    posterID,
		Category:    input.Category,
		Tags:        input.Tags,
	}

	now := time.Now()
	task.Difficulty = scoring.ComputeDifficulty(task)
	task.TimeEstimation = scoring.EstimateTime(task, task.Difficulty)
	task.Priority = scoring.ComputePriority(task, task.Difficulty, now)
	task.AutoCategory = scoring.AutoCategorize(task)

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	// Fan-out is asynchronous and best-effort; it can never fail creation.
	uc.dispatcher.TaskPosted(task)

	return task, nil
}

func (uc *TaskUseCase) GetTask(ctx context.Context, id string) (*entity.Task, error) {
	return uc.taskRepo.GetByID(ctx, id)
}

func (uc *TaskUseCase) ListTasks(ctx context.Context, status, category string, page, limit int) ([]*entity.Task, int64, error) {
	filter := make(map[string]interface{})
	if status != "" {
		if !entity.ValidTaskStatus(status) {
			return nil, 0, errors.BadRequest("Invalid task status", nil)
		}
		filter["status"] = status
	}
	if category != "" {
		filter["category"] = category
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.taskRepo.List(ctx, filter, "", limit, offset)
}

type UpdateTaskInput struct {
	Title       string
	Description string
	Budget      *float64
	Deadline    *time.Time
	Category    string
	Tags        []string
	Status      string
}

func (uc *TaskUseCase) UpdateTask(ctx context.Context, taskID, actingUserID string, input UpdateTaskInput) (*entity.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.PostedBy != actingUserID {
		return nil, errors.Forbidden("Only the task poster can update this task", nil)
	}

	if input.Title != "" {
		task.Title = input.Title
	}
	if input.Description != "" {
		task.Description = input.Description
	}
	if input.Budget != nil {
		task.Budget = input.Budget
	}
	if input.Deadline != nil {
		task.Deadline = *input.Deadline
	}
	if input.Category != "" {
		task.Category = input.Category
	}
	if input.Tags != nil {
		task.Tags = input.Tags
	}

	if input.Status != "" && input.Status != task.Status {
		if err := validateStatusTransition(task, input.Status); err != nil {
			return nil, err
		}
		task.Status = input.Status
	}

	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// validateStatusTransition enforces the task lifecycle: IN_PROGRESS is only
// reachable through bid acceptance (it requires an assignee), COMPLETED only
// from IN_PROGRESS, and CANCELLED from any non-terminal state.
func validateStatusTransition(task *entity.Task, newStatus string) error {
	if !entity.ValidTaskStatus(newStatus) {
		return errors.BadRequest("Invalid task status", nil)
	}

	switch newStatus {
	case entity.TaskStatusInProgress:
		if task.AssignedTo == "" {
			return errors.Conflict("Task cannot be in progress without an assignee; accept a bid instead")
		}
	case entity.TaskStatusCompleted:
		if task.Status != entity.TaskStatusInProgress {
			return errors.Conflict("Only in-progress tasks can be completed")
		}
	case entity.TaskStatusCancelled:
		if task.Status == entity.TaskStatusCompleted {
			return errors.Conflict("Completed tasks cannot be cancelled")
		}
	case entity.TaskStatusPending:
		return errors.Conflict("Tasks cannot move back to pending")
	}

	return nil
}

func (uc *TaskUseCase) DeleteTask(ctx context.Context, taskID, actingUserID string) error {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if task.PostedBy != actingUserID {
		return errors.Forbidden("Only the task poster can delete this task", nil)
	}

	return uc.taskRepo.Delete(ctx, taskID)
}

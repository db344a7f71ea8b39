package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhive/internal/domain/entity"
	"taskhive/pkg/errors"
)

func newTaskFixture(t *testing.T) (*TaskUseCase, *fakeTaskRepo, *fakeNotificationRepo) {
	t.Helper()
	taskRepo := newFakeTaskRepo()
	userRepo := newFakeUserRepo(
		&entity.User{ID: "poster-1", Role: entity.RoleTaskPoster},
		&entity.User{ID: "freelancer-1", Role: entity.RoleFreelancer, Email: "f1@example.com"},
	)
	notificationRepo := newFakeNotificationRepo()
	dispatcher := newTestDispatcher(notificationRepo, userRepo)
	return NewTaskUseCase(taskRepo, userRepo, dispatcher), taskRepo, notificationRepo
}

func TestCreateTask(t *testing.T) {
	uc, _, _ := newTaskFixture(t)

	budget := 800.0
	task, err := uc.CreateTask(context.Background(), "poster-1", entity.RoleTaskPoster, CreateTaskInput{
		Title:       "Build a React dashboard",
		Description: "Frontend work with a REST API and database integration",
		Budget:      &budget,
		Deadline:    time.Now().Add(14 * 24 * time.Hour),
		Category:    "web_development",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, entity.TaskStatusPending, task.Status)
	assert.Equal(t, "poster-1", task.PostedBy)

	// Creation runs the full analysis pipeline.
	require.NotNil(t, task.Difficulty)
	assert.GreaterOrEqual(t, task.Difficulty.Score, 1.0)
	assert.LessOrEqual(t, task.Difficulty.Score, 10.0)
	require.NotNil(t, task.TimeEstimation)
	assert.GreaterOrEqual(t, task.TimeEstimation.EstimatedHours, 1.0)
	require.NotNil(t, task.Priority)
	require.NotNil(t, task.AutoCategory)
	assert.Equal(t, "web_development", task.AutoCategory.Primary)
}

func TestCreateTaskRequiresPosterRole(t *testing.T) {
	uc, _, _ := newTaskFixture(t)

	_, err := uc.CreateTask(context.Background(), "freelancer-1", entity.RoleFreelancer, CreateTaskInput{
		Title: "Nope",
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateTaskRejectsCancelledStatus(t *testing.T) {
	uc, _, _ := newTaskFixture(t)

	_, err := uc.CreateTask(context.Background(), "poster-1", entity.RoleTaskPoster, CreateTaskInput{
		Title:  "Doomed",
		Status: entity.TaskStatusCancelled,
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUpdateTaskOwnership(t *testing.T) {
	uc, _, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := uc.CreateTask(ctx, "poster-1", entity.RoleTaskPoster, CreateTaskInput{Title: "Mine"})
	require.NoError(t, err)

	_, err = uc.UpdateTask(ctx, task.ID, "poster-2", UpdateTaskInput{Title: "Hijacked"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestTaskStatusTransitions(t *testing.T) {
	uc, taskRepo, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := uc.CreateTask(ctx, "poster-1", entity.RoleTaskPoster, CreateTaskInput{Title: "Lifecycle"})
	require.NoError(t, err)

	// IN_PROGRESS without an assignee is reserved for bid acceptance.
	_, err = uc.UpdateTask(ctx, task.ID, "poster-1", UpdateTaskInput{Status: entity.TaskStatusInProgress})
	assert.True(t, errors.Is(err, "CONFLICT"))

	// COMPLETED straight from PENDING is not allowed either.
	_, err = uc.UpdateTask(ctx, task.ID, "poster-1", UpdateTaskInput{Status: entity.TaskStatusCompleted})
	assert.True(t, errors.Is(err, "CONFLICT"))

	// Assigning unlocks IN_PROGRESS, then COMPLETED.
	stored, err := taskRepo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	stored.AssignedTo = "freelancer-1"

	_, err = uc.UpdateTask(ctx, task.ID, "poster-1", UpdateTaskInput{Status: entity.TaskStatusInProgress})
	require.NoError(t, err)
	updated, err := uc.UpdateTask(ctx, task.ID, "poster-1", UpdateTaskInput{Status: entity.TaskStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, updated.Status)

	// Terminal: no cancelling, no reopening.
	_, err = uc.UpdateTask(ctx, task.ID, "poster-1", UpdateTaskInput{Status: entity.TaskStatusCancelled})
	assert.True(t, errors.Is(err, "CONFLICT"))
	_, err = uc.UpdateTask(ctx, task.ID, "poster-1", UpdateTaskInput{Status: entity.TaskStatusPending})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestDeleteTask(t *testing.T) {
	uc, _, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := uc.CreateTask(ctx, "poster-1", entity.RoleTaskPoster, CreateTaskInput{Title: "Ephemeral"})
	require.NoError(t, err)

	assert.True(t, errors.Is(uc.DeleteTask(ctx, task.ID, "someone-else"), "FORBIDDEN"))
	require.NoError(t, uc.DeleteTask(ctx, task.ID, "poster-1"))

	_, err = uc.GetTask(ctx, task.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListTasksRejectsUnknownStatus(t *testing.T) {
	uc, _, _ := newTaskFixture(t)

	_, _, err := uc.ListTasks(context.Background(), "OPEN", "", 1, 20)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

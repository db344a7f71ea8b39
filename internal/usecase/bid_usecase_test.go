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

func newBidFixture(t *testing.T) (*BidUseCase, *fakeTaskRepo, *fakeBidRepo) {
	t.Helper()
	taskRepo := newFakeTaskRepo(&entity.Task{
		ID:       "task-1",
		Title:    "Build an API",
		Status:   entity.TaskStatusPending,
		PostedBy: "poster-1",
	})
	bidRepo := newFakeBidRepo(taskRepo)
	userRepo := newFakeUserRepo(
		&entity.User{ID: "poster-1", Role: entity.RoleTaskPoster},
		&entity.User{ID: "freelancer-1", Role: entity.RoleFreelancer},
		&entity.User{ID: "freelancer-2", Role: entity.RoleFreelancer},
	)
	dispatcher := newTestDispatcher(newFakeNotificationRepo(), userRepo)
	return NewBidUseCase(bidRepo, taskRepo, dispatcher), taskRepo, bidRepo
}

func placeBid(t *testing.T, uc *BidUseCase, bidderID string) *entity.Bid {
	t.Helper()
	bid, err := uc.PlaceBid(context.Background(), "task-1", bidderID, PlaceBidInput{
		BidAmount:           400,
		EstimatedCompletion: time.Now().Add(7 * 24 * time.Hour),
		Message:             "I can do this",
	})
	require.NoError(t, err)
	return bid
}

func TestPlaceBid(t *testing.T) {
	uc, _, _ := newBidFixture(t)

	bid := placeBid(t, uc, "freelancer-1")
	assert.Equal(t, entity.BidStatusPending, bid.Status)
	assert.Equal(t, "task-1", bid.TaskID)
	assert.NotEmpty(t, bid.ID)
}

func TestPlaceBidOnOwnTask(t *testing.T) {
	uc, _, _ := newBidFixture(t)

	_, err := uc.PlaceBid(context.Background(), "task-1", "poster-1", PlaceBidInput{BidAmount: 100})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestPlaceBidUnknownTask(t *testing.T) {
	uc, _, _ := newBidFixture(t)

	_, err := uc.PlaceBid(context.Background(), "missing", "freelancer-1", PlaceBidInput{BidAmount: 100})
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestAcceptBid(t *testing.T) {
	uc, taskRepo, _ := newBidFixture(t)
	winner := placeBid(t, uc, "freelancer-1")
	loser := placeBid(t, uc, "freelancer-2")

	result, err := uc.AcceptBid(context.Background(), winner.ID, "poster-1", entity.RoleTaskPoster)
	require.NoError(t, err)

	assert.Equal(t, entity.BidStatusAccepted, result.Bid.Status)
	assert.Equal(t, entity.TaskStatusInProgress, result.Task.Status)
	assert.Equal(t, "freelancer-1", result.Task.AssignedTo)

	// The competing bid was rejected in the same step.
	siblings, err := uc.ListBids(context.Background(), "task-1")
	require.NoError(t, err)
	for _, bid := range siblings {
		if bid.ID == loser.ID {
			assert.Equal(t, entity.BidStatusRejected, bid.Status)
		}
	}

	task, err := taskRepo.GetByID(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusInProgress, task.Status)
}

func TestAcceptBidTwice(t *testing.T) {
	uc, _, _ := newBidFixture(t)
	first := placeBid(t, uc, "freelancer-1")
	second := placeBid(t, uc, "freelancer-2")

	_, err := uc.AcceptBid(context.Background(), first.ID, "poster-1", entity.RoleTaskPoster)
	require.NoError(t, err)

	// The task already left PENDING, so a second acceptance conflicts.
	_, err = uc.AcceptBid(context.Background(), second.ID, "poster-1", entity.RoleTaskPoster)
	assert.True(t, errors.Is(err, "CONFLICT"))

	// And so does re-accepting the winner.
	_, err = uc.AcceptBid(context.Background(), first.ID, "poster-1", entity.RoleTaskPoster)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestAcceptBidRequiresPosterRole(t *testing.T) {
	uc, _, _ := newBidFixture(t)
	bid := placeBid(t, uc, "freelancer-1")

	_, err := uc.AcceptBid(context.Background(), bid.ID, "freelancer-2", entity.RoleFreelancer)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestAcceptBidRequiresOwnership(t *testing.T) {
	uc, _, _ := newBidFixture(t)
	bid := placeBid(t, uc, "freelancer-1")

	_, err := uc.AcceptBid(context.Background(), bid.ID, "poster-2", entity.RoleTaskPoster)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestRejectBid(t *testing.T) {
	uc, _, _ := newBidFixture(t)
	bid := placeBid(t, uc, "freelancer-1")

	rejected, err := uc.RejectBid(context.Background(), bid.ID, "poster-1", entity.RoleTaskPoster)
	require.NoError(t, err)
	assert.Equal(t, entity.BidStatusRejected, rejected.Status)
}

func TestRejectAcceptedBid(t *testing.T) {
	uc, _, _ := newBidFixture(t)
	bid := placeBid(t, uc, "freelancer-1")

	_, err := uc.AcceptBid(context.Background(), bid.ID, "poster-1", entity.RoleTaskPoster)
	require.NoError(t, err)

	_, err = uc.RejectBid(context.Background(), bid.ID, "poster-1", entity.RoleTaskPoster)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestListMyBids(t *testing.T) {
	uc, _, _ := newBidFixture(t)
	placeBid(t, uc, "freelancer-1")
	placeBid(t, uc, "freelancer-2")

	bids, total, err := uc.ListMyBids(context.Background(), "freelancer-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, bids, 1)
	assert.Equal(t, "freelancer-1", bids[0].BidderID)
}

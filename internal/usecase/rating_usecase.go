package usecase

import (
	"context"
	"math"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/pkg/errors"
	"taskhive/pkg/logger"
)

type RatingUseCase struct {
	ratingRepo repository.RatingRepository
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
}

func NewRatingUseCase(
	ratingRepo repository.RatingRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) *RatingUseCase {
	return &RatingUseCase{
		ratingRepo: ratingRepo,
		taskRepo:   taskRepo,
		userRepo:   userRepo,
	}
}

type UpsertRatingInput struct {
	Rating     int
	Review     string
	RevieweeID string
	IsPublic   *bool
}

// UpsertRating creates or updates the single rating a reviewer may leave
// per task. The reviewee defaults to the other participant.
func (uc *RatingUseCase) UpsertRating(ctx context.Context, taskID, reviewerID string, input UpsertRatingInput) (*entity.Rating, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status != entity.TaskStatusCompleted {
		return nil, errors.Conflict("Only completed tasks can be rated")
	}

	if reviewerID != task.PostedBy && reviewerID != task.AssignedTo {
		return nil, errors.Forbidden("Only task participants can leave a rating", nil)
	}

	revieweeID := input.RevieweeID
	if revieweeID == "" {
		if reviewerID == task.PostedBy {
			revieweeID = task.AssignedTo
		} else {
			revieweeID = task.PostedBy
		}
	}

	if revieweeID == "" {
		return nil, errors.BadRequest("Task has no counterpart to rate", nil)
	}
	if revieweeID == reviewerID {
		return nil, errors.BadRequest("You cannot rate yourself", nil)
	}
	if revieweeID != task.PostedBy && revieweeID != task.AssignedTo {
		return nil, errors.BadRequest("Reviewee is not a participant of this task", nil)
	}

	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}
	if len(input.Review) > 1000 {
		return nil, errors.BadRequest("Review must be at most 1000 characters", nil)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	rating, err := uc.ratingRepo.GetByTaskAndReviewer(ctx, taskID, reviewerID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if rating != nil {
		// Second call for the same (task, reviewer) updates in place.
		rating.Rating = input.Rating
		rating.Review = input.Review
		rating.IsPublic = isPublic
		if err := uc.ratingRepo.Update(ctx, rating); err != nil {
			return nil, err
		}
	} else {
		rating = &entity.Rating{
			TaskID:     taskID,
			ReviewerID: reviewerID,
			RevieweeID: revieweeID,
			Rating:     input.Rating,
			Review:     input.Review,
			IsPublic:   isPublic,
		}
		if err := uc.ratingRepo.Create(ctx, rating); err != nil {
			return nil, err
		}
	}

	uc.refreshUserRating(ctx, rating.RevieweeID)

	return rating, nil
}

// refreshUserRating recomputes the reviewee's aggregate rating. Failure is
// logged, never surfaced; the rating write already succeeded.
func (uc *RatingUseCase) refreshUserRating(ctx context.Context, revieweeID string) {
	ratings, _, err := uc.ratingRepo.ListByReviewee(ctx, revieweeID, true, 0, 0)
	if err != nil {
		logger.Warn("Failed to list ratings for aggregate refresh of %s: %v", revieweeID, err)
		return
	}

	user, err := uc.userRepo.GetByID(ctx, revieweeID)
	if err != nil {
		logger.Warn("Failed to load user %s for aggregate refresh: %v", revieweeID, err)
		return
	}

	if len(ratings) == 0 {
		user.Rating = 0
		user.RatingCount = 0
	} else {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
		}
		user.Rating = math.Round(float64(sum)/float64(len(ratings))*10) / 10
		user.RatingCount = len(ratings)
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Warn("Failed to save aggregate rating for %s: %v", revieweeID, err)
	}
}

func (uc *RatingUseCase) ListUserRatings(ctx context.Context, revieweeID string, page, limit int) ([]*entity.Rating, int64, error) {
	if _, err := uc.userRepo.GetByID(ctx, revieweeID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.ratingRepo.ListByReviewee(ctx, revieweeID, true, limit, offset)
}

type HelpfulVoteResult struct {
	HelpfulVotes int  `json:"helpfulVotes"`
	Voted        bool `json:"voted"`
}

// ToggleHelpfulVote adds the user's vote if absent and removes it if
// present, so two calls restore the original count.
func (uc *RatingUseCase) ToggleHelpfulVote(ctx context.Context, ratingID, userID string) (*HelpfulVoteResult, error) {
	rating, err := uc.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return nil, err
	}

	if rating.HasVoted(userID) {
		votes := make([]string, 0, len(rating.HelpfulVotes)-1)
		for _, id := range rating.HelpfulVotes {
			if id != userID {
				votes = append(votes, id)
			}
		}
		rating.HelpfulVotes = votes
	} else {
		rating.HelpfulVotes = append(rating.HelpfulVotes, userID)
	}

	if err := uc.ratingRepo.Update(ctx, rating); err != nil {
		return nil, err
	}

	return &HelpfulVoteResult{
		HelpfulVotes: len(rating.HelpfulVotes),
		Voted:        rating.HasVoted(userID),
	}, nil
}

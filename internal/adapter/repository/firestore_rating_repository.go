package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/pkg/errors"
)

type firestoreRatingRepository struct {
	client *firestore.Client
}

func NewFirestoreRatingRepository(client *firestore.Client) repository.RatingRepository {
	return &firestoreRatingRepository{
		client: client,
	}
}

func (r *firestoreRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	if rating.ID == "" {
		doc := r.client.Collection("ratings").NewDoc()
		rating.ID = doc.ID
	}

	now := time.Now()
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = now
	}
	rating.UpdatedAt = now

	_, err := r.client.Collection("ratings").Doc(rating.ID).Set(ctx, rating)
	if err != nil {
		return errors.Internal("Failed to create rating", err)
	}

	return nil
}

func (r *firestoreRatingRepository) GetByID(ctx context.Context, id string) (*entity.Rating, error) {
	doc, err := r.client.Collection("ratings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Rating", err)
		}
		return nil, errors.Unavailable("Failed to get rating", err)
	}

	var rating entity.Rating
	if err := doc.DataTo(&rating); err != nil {
		return nil, errors.Internal("Failed to parse rating data", err)
	}

	return &rating, nil
}

func (r *firestoreRatingRepository) GetByTaskAndReviewer(ctx context.Context, taskID, reviewerID string) (*entity.Rating, error) {
	iter := r.client.Collection("ratings").
		Where("taskId", "==", taskID).
		Where("reviewerId", "==", reviewerID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Rating", nil)
	}
	if err != nil {
		return nil, errors.Unavailable("Failed to query rating", err)
	}

	var rating entity.Rating
	if err := doc.DataTo(&rating); err != nil {
		return nil, errors.Internal("Failed to parse rating data", err)
	}

	return &rating, nil
}

func (r *firestoreRatingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	rating.UpdatedAt = time.Now()

	_, err := r.client.Collection("ratings").Doc(rating.ID).Set(ctx, rating)
	if err != nil {
		return errors.Internal("Failed to update rating", err)
	}

	return nil
}

func (r *firestoreRatingRepository) ListByReviewee(ctx context.Context, revieweeID string, publicOnly bool, limit, offset int) ([]*entity.Rating, int64, error) {
	query := r.client.Collection("ratings").Query.Where("revieweeId", "==", revieweeID)
	if publicOnly {
		query = query.Where("isPublic", "==", true)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Unavailable("Failed to count ratings", err)
	}
	total := int64(len(allDocs))

	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var ratings []*entity.Rating
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Unavailable("Failed to iterate ratings", err)
		}
		var rating entity.Rating
		if err := doc.DataTo(&rating); err != nil {
			return nil, 0, errors.Internal("Failed to parse rating data", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, total, nil
}

package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/pkg/errors"
)

type firestoreProgressRepository struct {
	client *firestore.Client
}

func NewFirestoreProgressRepository(client *firestore.Client) repository.ProgressRepository {
	return &firestoreProgressRepository{
		client: client,
	}
}

func (r *firestoreProgressRepository) GetByTaskID(ctx context.Context, taskID string) (*entity.Progress, error) {
	iter := r.client.Collection("progress").Where("taskId", "==", taskID).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Progress", nil)
	}
	if err != nil {
		return nil, errors.Unavailable("Failed to query progress", err)
	}

	var progress entity.Progress
	if err := doc.DataTo(&progress); err != nil {
		return nil, errors.Internal("Failed to parse progress data", err)
	}

	return &progress, nil
}

func (r *firestoreProgressRepository) Upsert(ctx context.Context, progress *entity.Progress) error {
	if progress.ID == "" {
		doc := r.client.Collection("progress").NewDoc()
		progress.ID = doc.ID
	}

	now := time.Now()
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = now
	}
	progress.UpdatedAt = now

	_, err := r.client.Collection("progress").Doc(progress.ID).Set(ctx, progress)
	if err != nil {
		return errors.Internal("Failed to save progress", err)
	}

	return nil
}

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

type firestoreBidRepository struct {
	client *firestore.Client
}

func NewFirestoreBidRepository(client *firestore.Client) repository.BidRepository {
	return &firestoreBidRepository{
		client: client,
	}
}

func (r *firestoreBidRepository) Create(ctx context.Context, bid *entity.Bid) error {
	if bid.ID == "" {
		doc := r.client.Collection("bids").NewDoc()
		bid.ID = doc.ID
	}

	now := time.Now()
	if bid.CreatedAt.IsZero() {
		bid.CreatedAt = now
	}
	bid.UpdatedAt = now

	_, err := r.client.Collection("bids").Doc(bid.ID).Set(ctx, bid)
	if err != nil {
		return errors.Internal("Failed to create bid", err)
	}

	return nil
}

func (r *firestoreBidRepository) GetByID(ctx context.Context, id string) (*entity.Bid, error) {
	doc, err := r.client.Collection("bids").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Bid", err)
		}
		return nil, errors.Unavailable("Failed to get bid", err)
	}

	var bid entity.Bid
	if err := doc.DataTo(&bid); err != nil {
		return nil, errors.Internal("Failed to parse bid data", err)
	}

	return &bid, nil
}

func (r *firestoreBidRepository) Update(ctx context.Context, bid *entity.Bid) error {
	bid.UpdatedAt = time.Now()

	_, err := r.client.Collection("bids").Doc(bid.ID).Set(ctx, bid)
	if err != nil {
		return errors.Internal("Failed to update bid", err)
	}

	return nil
}

func (r *firestoreBidRepository) ListByTask(ctx context.Context, taskID string) ([]*entity.Bid, error) {
	iter := r.client.Collection("bids").
		Where("taskId", "==", taskID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var bids []*entity.Bid
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Unavailable("Failed to iterate bids", err)
		}
		var bid entity.Bid
		if err := doc.DataTo(&bid); err != nil {
			return nil, errors.Internal("Failed to parse bid data", err)
		}
		bids = append(bids, &bid)
	}

	return bids, nil
}

func (r *firestoreBidRepository) ListByBidder(ctx context.Context, bidderID string, limit, offset int) ([]*entity.Bid, int64, error) {
	query := r.client.Collection("bids").Query.
		Where("bidderId", "==", bidderID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Unavailable("Failed to count bids", err)
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

	var bids []*entity.Bid
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Unavailable("Failed to iterate bids", err)
		}
		var bid entity.Bid
		if err := doc.DataTo(&bid); err != nil {
			return nil, 0, errors.Internal("Failed to parse bid data", err)
		}
		bids = append(bids, &bid)
	}

	return bids, total, nil
}

// Accept runs the whole accept sequence in one Firestore transaction. The
// conditional check on both statuses turns a concurrent second accept into
// a CONFLICT instead of a last-write-wins overwrite.
func (r *firestoreBidRepository) Accept(ctx context.Context, bidID, posterID string) (*entity.Bid, *entity.Task, error) {
	var acceptedBid entity.Bid
	var assignedTask entity.Task

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		bidRef := r.client.Collection("bids").Doc(bidID)
		bidDoc, err := tx.Get(bidRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Bid", err)
			}
			return errors.Unavailable("Failed to get bid", err)
		}

		var bid entity.Bid
		if err := bidDoc.DataTo(&bid); err != nil {
			return errors.Internal("Failed to parse bid data", err)
		}

		taskRef := r.client.Collection("tasks").Doc(bid.TaskID)
		taskDoc, err := tx.Get(taskRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Task", err)
			}
			return errors.Unavailable("Failed to get task", err)
		}

		var task entity.Task
		if err := taskDoc.DataTo(&task); err != nil {
			return errors.Internal("Failed to parse task data", err)
		}

		if task.PostedBy == "" {
			return errors.BadRequest("Task has no poster", nil)
		}
		if task.PostedBy != posterID {
			return errors.Forbidden("Only the task poster can accept bids on this task", nil)
		}
		if bid.Status != entity.BidStatusPending {
			return errors.Conflict("Bid has already been " + bid.Status)
		}
		if task.Status != entity.TaskStatusPending {
			return errors.Conflict("Task is no longer accepting bids")
		}

		// All sibling reads must happen before the first write.
		siblingIter := tx.Documents(r.client.Collection("bids").Where("taskId", "==", bid.TaskID))
		var siblingRefs []*firestore.DocumentRef
		for {
			doc, err := siblingIter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return errors.Unavailable("Failed to iterate sibling bids", err)
			}
			if doc.Ref.ID != bidID {
				siblingRefs = append(siblingRefs, doc.Ref)
			}
		}

		now := time.Now()

		bid.Status = entity.BidStatusAccepted
		bid.UpdatedAt = now
		if err := tx.Set(bidRef, &bid); err != nil {
			return errors.Internal("Failed to accept bid", err)
		}

		for _, ref := range siblingRefs {
			if err := tx.Update(ref, []firestore.Update{
				{Path: "status", Value: entity.BidStatusRejected},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return errors.Internal("Failed to reject sibling bid", err)
			}
		}

		task.AssignedTo = bid.BidderID
		task.Status = entity.TaskStatusInProgress
		task.UpdatedAt = now
		if err := tx.Set(taskRef, &task); err != nil {
			return errors.Internal("Failed to assign task", err)
		}

		acceptedBid = bid
		assignedTask = task
		return nil
	})

	if err != nil {
		return nil, nil, err
	}

	return &acceptedBid, &assignedTask, nil
}

package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/pkg/errors"
)

type firestoreTaskRepository struct {
	client *firestore.Client
}

func NewFirestoreTaskRepository(client *firestore.Client) repository.TaskRepository {
	return &firestoreTaskRepository{
		client: client,
	}
}

func (r *firestoreTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if task.ID == "" {
		doc := r.client.Collection("tasks").NewDoc()
		task.ID = doc.ID
	}

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	_, err := r.client.Collection("tasks").Doc(task.ID).Set(ctx, task)
	if err != nil {
		return errors.Internal("Failed to create task", err)
	}

	return nil
}

func (r *firestoreTaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	doc, err := r.client.Collection("tasks").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Task", err)
		}
		return nil, errors.Unavailable("Failed to get task", err)
	}

	var task entity.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, errors.Internal("Failed to parse task data", err)
	}

	return &task, nil
}

func (r *firestoreTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	task.UpdatedAt = time.Now()

	_, err := r.client.Collection("tasks").Doc(task.ID).Set(ctx, task)
	if err != nil {
		return errors.Internal("Failed to update task", err)
	}

	return nil
}

func (r *firestoreTaskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("tasks").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete task", err)
	}

	return nil
}

func (r *firestoreTaskRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Task, int64, error) {
	query := r.client.Collection("tasks").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	query = applySort(query, sort)

	return r.paginate(ctx, query, limit, offset)
}

func (r *firestoreTaskRepository) ListOpenForBidding(ctx context.Context, excludeUserID string, q repository.TaskQuery) ([]*entity.Task, int64, error) {
	query := r.client.Collection("tasks").Query.Where("status", "==", entity.TaskStatusPending)

	if excludeUserID != "" {
		query = query.Where("postedBy", "!=", excludeUserID)
	}

	for key, value := range q.Filter {
		query = query.Where(key, "==", value)
	}

	if q.MinBudget != nil {
		query = query.Where("budget", ">=", *q.MinBudget)
	}
	if q.MaxBudget != nil {
		query = query.Where("budget", "<=", *q.MaxBudget)
	}

	query = applySort(query, q.Sort)

	return r.paginate(ctx, query, q.Limit, q.Offset)
}

func applySort(query firestore.Query, sort string) firestore.Query {
	if sort == "" {
		return query.OrderBy("createdAt", firestore.Desc)
	}

	parts := strings.Split(sort, "_")
	field := parts[0]
	order := firestore.Asc
	if len(parts) > 1 && parts[1] == "desc" {
		order = firestore.Desc
	}
	return query.OrderBy(field, order)
}

func (r *firestoreTaskRepository) paginate(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Task, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Unavailable("Failed to count tasks", err)
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

	var tasks []*entity.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Unavailable("Failed to iterate tasks", err)
		}
		var task entity.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, 0, errors.Internal("Failed to parse task data", err)
		}
		tasks = append(tasks, &task)
	}

	return tasks, total, nil
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/pkg/errors"
)

// In-memory repository fakes for exercising the use cases without a store.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = slicePage(out, limit, offset)
	return out, total, nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	seq   int
	tasks map[string]*entity.Task
}

func newFakeTaskRepo(tasks ...*entity.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: make(map[string]*entity.Task)}
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return r
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		r.seq++
		task.ID = fmt.Sprintf("task-%d", r.seq)
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, errors.NotFound("Task", nil)
	}
	return task, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return errors.NotFound("Task", nil)
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return errors.NotFound("Task", nil)
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) List(ctx context.Context, filter map[string]interface{}, sortField string, limit, offset int) ([]*entity.Task, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Task
	for _, task := range r.tasks {
		if status, ok := filter["status"]; ok && task.Status != status {
			continue
		}
		if category, ok := filter["category"]; ok && task.Category != category {
			continue
		}
		out = append(out, task)
	}
	sortTasks(out, sortField)
	total := int64(len(out))
	out = slicePage(out, limit, offset)
	return out, total, nil
}

func (r *fakeTaskRepo) ListOpenForBidding(ctx context.Context, excludeUserID string, query repository.TaskQuery) ([]*entity.Task, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.Status != entity.TaskStatusPending || task.PostedBy == excludeUserID {
			continue
		}
		if category, ok := query.Filter["category"]; ok && task.Category != category {
			continue
		}
		if level, ok := query.Filter["difficulty.level"]; ok {
			if task.Difficulty == nil || task.Difficulty.Level != level {
				continue
			}
		}
		if level, ok := query.Filter["priority.level"]; ok {
			if task.Priority == nil || task.Priority.Level != level {
				continue
			}
		}
		if query.MinBudget != nil && (task.Budget == nil || *task.Budget < *query.MinBudget) {
			continue
		}
		if query.MaxBudget != nil && (task.Budget == nil || *task.Budget > *query.MaxBudget) {
			continue
		}
		out = append(out, task)
	}
	sortTasks(out, query.Sort)
	total := int64(len(out))
	out = slicePage(out, query.Limit, query.Offset)
	return out, total, nil
}

func sortTasks(tasks []*entity.Task, field string) {
	switch field {
	case "budget_desc":
		sort.SliceStable(tasks, func(i, j int) bool {
			return derefBudget(tasks[i]) > derefBudget(tasks[j])
		})
	case "budget_asc":
		sort.SliceStable(tasks, func(i, j int) bool {
			return derefBudget(tasks[i]) < derefBudget(tasks[j])
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

func derefBudget(task *entity.Task) float64 {
	if task.Budget == nil {
		return 0
	}
	return *task.Budget
}

type fakeBidRepo struct {
	mu    sync.Mutex
	seq   int
	bids  map[string]*entity.Bid
	tasks *fakeTaskRepo
}

func newFakeBidRepo(tasks *fakeTaskRepo) *fakeBidRepo {
	return &fakeBidRepo{bids: make(map[string]*entity.Bid), tasks: tasks}
}

func (r *fakeBidRepo) Create(ctx context.Context, bid *entity.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bid.ID == "" {
		r.seq++
		bid.ID = fmt.Sprintf("bid-%d", r.seq)
	}
	r.bids[bid.ID] = bid
	return nil
}

func (r *fakeBidRepo) GetByID(ctx context.Context, id string) (*entity.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bid, ok := r.bids[id]
	if !ok {
		return nil, errors.NotFound("Bid", nil)
	}
	return bid, nil
}

func (r *fakeBidRepo) Update(ctx context.Context, bid *entity.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bids[bid.ID]; !ok {
		return errors.NotFound("Bid", nil)
	}
	r.bids[bid.ID] = bid
	return nil
}

func (r *fakeBidRepo) ListByTask(ctx context.Context, taskID string) ([]*entity.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bid
	for _, bid := range r.bids {
		if bid.TaskID == taskID {
			out = append(out, bid)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBidRepo) ListByBidder(ctx context.Context, bidderID string, limit, offset int) ([]*entity.Bid, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Bid
	for _, bid := range r.bids {
		if bid.BidderID == bidderID {
			out = append(out, bid)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = slicePage(out, limit, offset)
	return out, total, nil
}

func (r *fakeBidRepo) Accept(ctx context.Context, bidID, posterID string) (*entity.Bid, *entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return nil, nil, errors.NotFound("Bid", nil)
	}
	task, err := r.tasks.GetByID(ctx, bid.TaskID)
	if err != nil {
		return nil, nil, err
	}
	if task.PostedBy != posterID {
		return nil, nil, errors.Forbidden("Only the task poster can accept bids on this task", nil)
	}
	if bid.Status != entity.BidStatusPending {
		return nil, nil, errors.Conflict("Bid is no longer pending")
	}
	if task.Status != entity.TaskStatusPending {
		return nil, nil, errors.Conflict("Task is no longer open for bidding")
	}

	bid.Status = entity.BidStatusAccepted
	for _, sibling := range r.bids {
		if sibling.TaskID == bid.TaskID && sibling.ID != bid.ID && sibling.Status == entity.BidStatusPending {
			sibling.Status = entity.BidStatusRejected
		}
	}
	task.Status = entity.TaskStatusInProgress
	task.AssignedTo = bid.BidderID
	return bid, task, nil
}

type fakeProgressRepo struct {
	mu       sync.Mutex
	progress map[string]*entity.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{progress: make(map[string]*entity.Progress)}
}

func (r *fakeProgressRepo) GetByTaskID(ctx context.Context, taskID string) (*entity.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.progress[taskID]
	if !ok {
		return nil, errors.NotFound("Progress", nil)
	}
	return p, nil
}

func (r *fakeProgressRepo) Upsert(ctx context.Context, progress *entity.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress[progress.TaskID] = progress
	return nil
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	seq     int
	ratings map[string]*entity.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[string]*entity.Rating)}
}

func (r *fakeRatingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rating.ID == "" {
		r.seq++
		rating.ID = fmt.Sprintf("rating-%d", r.seq)
	}
	r.ratings[rating.ID] = rating
	return nil
}

func (r *fakeRatingRepo) GetByID(ctx context.Context, id string) (*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating, ok := r.ratings[id]
	if !ok {
		return nil, errors.NotFound("Rating", nil)
	}
	return rating, nil
}

func (r *fakeRatingRepo) GetByTaskAndReviewer(ctx context.Context, taskID, reviewerID string) (*entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rating := range r.ratings {
		if rating.TaskID == taskID && rating.ReviewerID == reviewerID {
			return rating, nil
		}
	}
	return nil, errors.NotFound("Rating", nil)
}

func (r *fakeRatingRepo) Update(ctx context.Context, rating *entity.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ratings[rating.ID]; !ok {
		return errors.NotFound("Rating", nil)
	}
	r.ratings[rating.ID] = rating
	return nil
}

func (r *fakeRatingRepo) ListByReviewee(ctx context.Context, revieweeID string, publicOnly bool, limit, offset int) ([]*entity.Rating, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Rating
	for _, rating := range r.ratings {
		if rating.RevieweeID != revieweeID {
			continue
		}
		if publicOnly && !rating.IsPublic {
			continue
		}
		out = append(out, rating)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = slicePage(out, limit, offset)
	return out, total, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	seq           int
	notifications map[string]*entity.Notification
	failCreates   int // first N Create calls fail
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*entity.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates > 0 {
		r.failCreates--
		return errors.Unavailable("store down", nil)
	}
	if notification.ID == "" {
		r.seq++
		notification.ID = fmt.Sprintf("notification-%d", r.seq)
	}
	r.notifications[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	return n, nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	out = slicePage(out, limit, offset)
	return out, total, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return errors.NotFound("Notification", nil)
	}
	n.Read = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) countFor(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID {
			count++
		}
	}
	return count
}

// slicePage applies limit/offset; limit <= 0 means everything.
func slicePage[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func newTestDispatcher(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationDispatcher {
	return NewNotificationDispatcher(notificationRepo, userRepo, nil, nil, 16)
}

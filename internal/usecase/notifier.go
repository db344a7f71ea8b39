package usecase

import (
	"context"
	"fmt"
	"time"

	"taskhive/internal/domain/entity"
	"taskhive/internal/domain/repository"
	"taskhive/internal/infrastructure/mailer"
	"taskhive/internal/infrastructure/ws"
	"taskhive/pkg/logger"
)

const deliveryAttempts = 3

// LiveHub is the slice of the websocket hub the dispatcher needs.
type LiveHub interface {
	SendToUser(userID string, event ws.Event) bool
}

type notifyJob struct {
	kind string
	task *entity.Task
	bid  *entity.Bid
}

// NotificationDispatcher moves notification fan-out off the request path:
// producers enqueue, a single worker writes notification documents, pushes
// live events, and sends best-effort email. A full queue drops the job with
// a log line; delivery failures never reach the triggering request.
type NotificationDispatcher struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	hub              LiveHub
	mailer           mailer.Mailer
	queue            chan notifyJob
}

func NewNotificationDispatcher(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	hub LiveHub,
	mailer mailer.Mailer,
	queueSize int,
) *NotificationDispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &NotificationDispatcher{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		hub:              hub,
		mailer:           mailer,
		queue:            make(chan notifyJob, queueSize),
	}
}

// Start runs the delivery worker until ctx is cancelled.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case job := <-d.queue:
				d.process(ctx, job)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// TaskPosted fans out a new-task notification to every freelancer.
func (d *NotificationDispatcher) TaskPosted(task *entity.Task) {
	d.enqueue(notifyJob{kind: entity.NotificationTaskPosted, task: task})
}

// BidAccepted notifies the winning bidder.
func (d *NotificationDispatcher) BidAccepted(task *entity.Task, bid *entity.Bid) {
	d.enqueue(notifyJob{kind: entity.NotificationBidAccepted, task: task, bid: bid})
}

func (d *NotificationDispatcher) enqueue(job notifyJob) {
	select {
	case d.queue <- job:
	default:
		logger.Warn("Notification queue full, dropping %s event for task %s", job.kind, job.task.ID)
	}
}

func (d *NotificationDispatcher) process(ctx context.Context, job notifyJob) {
	switch job.kind {
	case entity.NotificationTaskPosted:
		freelancers, _, err := d.userRepo.ListByRole(ctx, entity.RoleFreelancer, 0, 0)
		if err != nil {
			logger.Error("Task fan-out: failed to list freelancers: %v", err)
			return
		}
		for _, freelancer := range freelancers {
			d.deliver(ctx, freelancer, &entity.Notification{
				UserID:  freelancer.ID,
				Type:    entity.NotificationTaskPosted,
				Title:   "New task posted",
				Message: fmt.Sprintf("A new task matching your profile was posted: %s", job.task.Title),
				TaskID:  job.task.ID,
			})
		}

	case entity.NotificationBidAccepted:
		bidder, err := d.userRepo.GetByID(ctx, job.bid.BidderID)
		if err != nil {
			logger.Error("Bid-accepted notification: failed to load bidder %s: %v", job.bid.BidderID, err)
			return
		}
		d.deliver(ctx, bidder, &entity.Notification{
			UserID:  bidder.ID,
			Type:    entity.NotificationBidAccepted,
			Title:   "Your bid was accepted",
			Message: fmt.Sprintf("Your bid on %q was accepted. The task is now assigned to you.", job.task.Title),
			TaskID:  job.task.ID,
		})
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, recipient *entity.User, notification *entity.Notification) {
	var err error
	for attempt := 1; attempt <= deliveryAttempts; attempt++ {
		if err = d.notificationRepo.Create(ctx, notification); err == nil {
			break
		}
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if err != nil {
		logger.Error("Failed to persist notification for %s after %d attempts: %v",
			recipient.ID, deliveryAttempts, err)
		return
	}

	if d.hub != nil {
		d.hub.SendToUser(recipient.ID, ws.Event{
			Type:    "notification",
			Payload: notification,
		})
	}

	if d.mailer != nil && recipient.Email != "" {
		if err := d.mailer.Send(recipient.Email, notification.Title, notification.Message); err != nil {
			logger.Warn("Failed to email %s: %v", recipient.Email, err)
		}
	}
}

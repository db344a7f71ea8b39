package entity

import (
	"time"
)

const (
	NotificationTaskPosted  = "task_posted"
	NotificationBidAccepted = "bid_accepted"
)

type Notification struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Type      string    `json:"type" firestore:"type"`
	Title     string    `json:"title" firestore:"title"`
	Message   string    `json:"message" firestore:"message"`
	TaskID    string    `json:"task_id,omitempty" firestore:"taskId,omitempty"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

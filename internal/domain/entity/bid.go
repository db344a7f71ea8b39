package entity

import (
	"time"
)

const (
	BidStatusPending  = "PENDING"
	BidStatusAccepted = "ACCEPTED"
	BidStatusRejected = "REJECTED"
)

// Bid is a freelancer's proposal against a task. Bids are never deleted;
// they only move PENDING -> ACCEPTED | REJECTED.
type Bid struct {
	ID                  string    `json:"id" firestore:"id"`
	TaskID              string    `json:"task_id" firestore:"taskId"`
	BidderID            string    `json:"bidder_id" firestore:"bidderId"`
	BidAmount           float64   `json:"bid_amount" firestore:"bidAmount"`
	EstimatedCompletion time.Time `json:"estimated_completion" firestore:"estimatedCompletion"`
	Message             string    `json:"message,omitempty" firestore:"message,omitempty"`
	Status              string    `json:"status" firestore:"status"`
	CreatedAt           time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt           time.Time `json:"updated_at" firestore:"updatedAt"`
}

package entity

import (
	"time"
)

// Rating is a 1-5 review left by one task participant about the other,
// unique per (taskId, reviewer) pair.
type Rating struct {
	ID         string `json:"id" firestore:"id"`
	TaskID     string `json:"task_id" firestore:"taskId"`
	ReviewerID string `json:"reviewer_id" firestore:"reviewerId"`
	RevieweeID string `json:"reviewee_id" firestore:"revieweeId"`
	Rating     int    `json:"rating" firestore:"rating"`
	Review     string `json:"review,omitempty" firestore:"review,omitempty"`

	// User IDs that marked this rating helpful, one vote per user.
	HelpfulVotes []string `json:"helpful_votes,omitempty" firestore:"helpfulVotes,omitempty"`
	IsPublic     bool     `json:"is_public" firestore:"isPublic"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (r *Rating) HasVoted(userID string) bool {
	for _, id := range r.HelpfulVotes {
		if id == userID {
			return true
		}
	}
	return false
}

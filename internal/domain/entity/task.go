package entity

import (
	"time"
)

const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusCancelled  = "CANCELLED"
)

// Difficulty is derived at creation time from weighted description factors.
type Difficulty struct {
	Score   float64            `json:"score" firestore:"score"`
	Level   string             `json:"level" firestore:"level"`
	Factors map[string]float64 `json:"factors,omitempty" firestore:"factors,omitempty"`
}

type TimeEstimation struct {
	EstimatedHours float64            `json:"estimated_hours" firestore:"estimatedHours"`
	EstimatedDays  int                `json:"estimated_days" firestore:"estimatedDays"`
	Confidence     string             `json:"confidence" firestore:"confidence"`
	Breakdown      map[string]float64 `json:"breakdown,omitempty" firestore:"breakdown,omitempty"`
}

type Priority struct {
	Score   float64            `json:"score" firestore:"score"`
	Level   string             `json:"level" firestore:"level"`
	Factors map[string]float64 `json:"factors,omitempty" firestore:"factors,omitempty"`
}

type AutoCategory struct {
	Primary    string   `json:"primary" firestore:"primary"`
	Secondary  string   `json:"secondary,omitempty" firestore:"secondary,omitempty"`
	Confidence float64  `json:"confidence" firestore:"confidence"`
	Keywords   []string `json:"keywords,omitempty" firestore:"keywords,omitempty"`
}

type Task struct {
	ID          string   `json:"id" firestore:"id"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Budget      *float64 `json:"budget,omitempty" firestore:"budget,omitempty"`

	Deadline   time.Time `json:"deadline" firestore:"deadline"`
	Status     string    `json:"status" firestore:"status"`
	PostedBy   string    `json:"posted_by" firestore:"postedBy"`
	AssignedTo string    `json:"assigned_to,omitempty" firestore:"assignedTo,omitempty"`
	Category   string    `json:"category,omitempty" firestore:"category,omitempty"`
	Tags       []string  `json:"tags,omitempty" firestore:"tags,omitempty"`

	Difficulty     *Difficulty     `json:"difficulty,omitempty" firestore:"difficulty,omitempty"`
	TimeEstimation *TimeEstimation `json:"time_estimation,omitempty" firestore:"timeEstimation,omitempty"`
	Priority       *Priority       `json:"priority,omitempty" firestore:"priority,omitempty"`
	AutoCategory   *AutoCategory   `json:"auto_category,omitempty" firestore:"autoCategory,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

package entity

import (
	"math"
	"time"
)

const (
	MilestonePending    = "pending"
	MilestoneInProgress = "in_progress"
	MilestoneCompleted  = "completed"
	MilestoneOverdue    = "overdue"
)

const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

type Milestone struct {
	Title       string     `json:"title" firestore:"title"`
	Description string     `json:"description,omitempty" firestore:"description,omitempty"`
	DueDate     time.Time  `json:"due_date" firestore:"dueDate"`
	Status      string     `json:"status" firestore:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	CompletedBy string     `json:"completed_by,omitempty" firestore:"completedBy,omitempty"`
	Order       int        `json:"order" firestore:"order"`
}

// Progress is the one-to-one milestone tracker for a task. OverallProgress
// and Status are derived fields, recomputed on every milestone write.
type Progress struct {
	ID              string      `json:"id" firestore:"id"`
	TaskID          string      `json:"task_id" firestore:"taskId"`
	Milestones      []Milestone `json:"milestones" firestore:"milestones"`
	OverallProgress int         `json:"overall_progress" firestore:"overallProgress"`
	Status          string      `json:"status" firestore:"status"`
	CreatedAt       time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time   `json:"updated_at" firestore:"updatedAt"`
}

func ValidMilestoneStatus(status string) bool {
	switch status {
	case MilestonePending, MilestoneInProgress, MilestoneCompleted, MilestoneOverdue:
		return true
	}
	return false
}

// Recompute rederives OverallProgress and Status from the milestone list.
func (p *Progress) Recompute() {
	total := len(p.Milestones)
	if total == 0 {
		p.OverallProgress = 0
		p.Status = ProgressNotStarted
		return
	}

	completed := 0
	for _, m := range p.Milestones {
		if m.Status == MilestoneCompleted {
			completed++
		}
	}

	p.OverallProgress = int(math.Round(100 * float64(completed) / float64(total)))

	switch p.OverallProgress {
	case 0:
		p.Status = ProgressNotStarted
	case 100:
		p.Status = ProgressCompleted
	default:
		p.Status = ProgressInProgress
	}
}

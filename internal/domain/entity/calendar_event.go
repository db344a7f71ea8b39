package entity

import (
	"time"
)

const (
	CalendarEventDeadline = "deadline"
	CalendarEventMeeting  = "meeting"
	CalendarEventReminder = "reminder"
)

type CalendarEvent struct {
	ID          string    `json:"id" firestore:"id"`
	UserID      string    `json:"user_id" firestore:"userId"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	StartTime   time.Time `json:"start_time" firestore:"startTime"`
	EndTime     time.Time `json:"end_time" firestore:"endTime"`
	Type        string    `json:"type" firestore:"type"`
	TaskID      string    `json:"task_id,omitempty" firestore:"taskId,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

func ValidCalendarEventType(t string) bool {
	switch t {
	case CalendarEventDeadline, CalendarEventMeeting, CalendarEventReminder:
		return true
	}
	return false
}

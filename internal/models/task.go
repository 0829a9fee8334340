package models

import "time"

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

type Task struct {
	ID               int64      `json:"id"`
	UserID           string     `json:"user_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	DueDate          *time.Time `json:"due_date"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	CreatedAt        time.Time  `json:"created_at"`
}

// TaskDraft is the payload for creating a task, typically built from an
// accepted suggestion.
type TaskDraft struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Priority         string     `json:"priority"`
	DueDate          *time.Time `json:"due_date"`
	EstimatedMinutes int        `json:"estimated_minutes"`
}

type TaskFilter struct {
	UserID     string
	Status     string
	DueBefore  *time.Time
	Priorities []string
	Limit      int
}

package models

// Priority labels a due grouping or suggestion.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort weight of a priority, higher meaning more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// DueReview is the per-deck aggregate produced by due classification.
// It is computed fresh on every query and never persisted.
type DueReview struct {
	DeckID     int64    `json:"deck_id"`
	DeckName   string   `json:"deck_name"`
	DueCount   int      `json:"due_count"`
	TotalCards int      `json:"total_cards"`
	Priority   Priority `json:"priority"`
}

const (
	SuggestionOverdueReview  = "overdue_review"
	SuggestionOverdueTask    = "overdue_task"
	SuggestionUpcomingTask   = "upcoming_task"
	SuggestionDueTodayReview = "due_today_review"
	SuggestionGeneralStudy   = "general_study"
)

// SuggestionMetadata links a suggestion back to the deck or task that
// produced it.
type SuggestionMetadata struct {
	DeckID *int64   `json:"deck_id,omitempty"`
	TaskID *int64   `json:"task_id,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// SmartSuggestion is an ephemeral study recommendation. Accepting one
// converts it into a TaskDraft; it is never stored.
type SmartSuggestion struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Type             string              `json:"type"`
	Priority         Priority            `json:"priority"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	Reason           string              `json:"reason"`
	Metadata         *SuggestionMetadata `json:"metadata,omitempty"`
}

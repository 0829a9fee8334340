// Package suggest merges heterogeneous study-suggestion candidates into a
// single bounded, priority-ordered list.
package suggest

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/studyflowhq/studyflow/internal/models"
)

// Input holds the candidate sources for ranking, already filtered by the
// caller: overdue/due-today deck aggregates from the classifier, pending
// tasks past their due date, and high/urgent pending tasks due within the
// next 24 hours.
type Input struct {
	OverdueReviews  []models.DueReview
	DueTodayReviews []models.DueReview
	OverdueTasks    []models.Task
	UpcomingTasks   []models.Task
}

// Rank merges the candidate sources into a priority-ordered suggestion
// list, truncated to limit. Source precedence is fixed: overdue reviews,
// overdue tasks, upcoming high/urgent tasks, due-today reviews. The sort
// is stable, so precedence order is preserved within equal priority.
// When no source yields a candidate, a single time-of-day fallback
// suggestion is returned instead of an empty list.
func Rank(in Input, limit int, now time.Time) []models.SmartSuggestion {
	if limit < 1 {
		limit = 1
	}

	var out []models.SmartSuggestion

	overdueDecks := make(map[int64]bool, len(in.OverdueReviews))
	for _, dr := range in.OverdueReviews {
		overdueDecks[dr.DeckID] = true
		out = append(out, reviewSuggestion(dr, models.SuggestionOverdueReview, models.PriorityHigh,
			fmt.Sprintf("%d cards in %q are overdue for review", dr.DueCount, dr.DeckName)))
	}

	for _, t := range in.OverdueTasks {
		out = append(out, taskSuggestion(t, models.SuggestionOverdueTask, models.PriorityHigh,
			"this task is past its due date"))
	}

	for _, t := range in.UpcomingTasks {
		priority := models.PriorityMedium
		if t.Priority == models.TaskPriorityUrgent {
			priority = models.PriorityHigh
		}
		out = append(out, taskSuggestion(t, models.SuggestionUpcomingTask, priority,
			fmt.Sprintf("%s-priority task due within 24 hours", t.Priority)))
	}

	for _, dr := range in.DueTodayReviews {
		// Decks already surfaced as overdue are not repeated.
		if overdueDecks[dr.DeckID] {
			continue
		}
		out = append(out, reviewSuggestion(dr, models.SuggestionDueTodayReview, dr.Priority,
			fmt.Sprintf("%d cards in %q are due today", dr.DueCount, dr.DeckName)))
	}

	if len(out) == 0 {
		return []models.SmartSuggestion{fallback(now)}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func reviewSuggestion(dr models.DueReview, kind string, priority models.Priority, reason string) models.SmartSuggestion {
	deckID := dr.DeckID
	return models.SmartSuggestion{
		ID:               uuid.NewString(),
		Title:            fmt.Sprintf("Review %s", dr.DeckName),
		Description:      fmt.Sprintf("%d of %d cards ready for review", dr.DueCount, dr.TotalCards),
		Type:             kind,
		Priority:         priority,
		EstimatedMinutes: reviewMinutes(dr.DueCount),
		Reason:           reason,
		Metadata:         &models.SuggestionMetadata{DeckID: &deckID},
	}
}

func taskSuggestion(t models.Task, kind string, priority models.Priority, reason string) models.SmartSuggestion {
	taskID := t.ID
	minutes := t.EstimatedMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return models.SmartSuggestion{
		ID:               uuid.NewString(),
		Title:            t.Title,
		Description:      t.Description,
		Type:             kind,
		Priority:         priority,
		EstimatedMinutes: minutes,
		Reason:           reason,
		Metadata:         &models.SuggestionMetadata{TaskID: &taskID},
	}
}

// fallback builds the single general suggestion used when nothing else is
// due, with urgency derived from the time of day: mornings are the best
// study window, afternoons acceptable, evenings low-key.
func fallback(now time.Time) models.SmartSuggestion {
	hour := now.Hour()
	priority := models.PriorityLow
	reason := "nothing is due; a light evening session keeps the habit going"
	switch {
	case hour >= 6 && hour < 12:
		priority = models.PriorityHigh
		reason = "nothing is due; mornings are your most effective study window"
	case hour >= 12 && hour < 17:
		priority = models.PriorityMedium
		reason = "nothing is due; an afternoon session keeps material fresh"
	}
	return models.SmartSuggestion{
		ID:               uuid.NewString(),
		Title:            "General study session",
		Description:      "Pick a deck or document and study for a focused block",
		Type:             models.SuggestionGeneralStudy,
		Priority:         priority,
		EstimatedMinutes: 25,
		Reason:           reason,
	}
}

// reviewMinutes estimates session length from the due count, two minutes
// per card clamped to a 5..60 minute block.
func reviewMinutes(dueCount int) int {
	minutes := dueCount * 2
	if minutes < 5 {
		minutes = 5
	}
	if minutes > 60 {
		minutes = 60
	}
	return minutes
}

// Draft converts an accepted suggestion into a task-creation payload.
func Draft(s models.SmartSuggestion, now time.Time) models.TaskDraft {
	priority := models.TaskPriorityMedium
	switch s.Priority {
	case models.PriorityHigh:
		priority = models.TaskPriorityHigh
	case models.PriorityLow:
		priority = models.TaskPriorityLow
	}
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
	return models.TaskDraft{
		Title:            s.Title,
		Description:      s.Description,
		Priority:         priority,
		DueDate:          &endOfDay,
		EstimatedMinutes: s.EstimatedMinutes,
	}
}

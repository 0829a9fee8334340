package srs

import (
	"sort"
	"time"

	"github.com/studyflowhq/studyflow/internal/models"
)

// Priority ratio thresholds shared by every classification.
const (
	highRatio   = 0.5
	mediumRatio = 0.25
)

// PriorityForRatio derives a deck's urgency from how much of it is due.
// Boundaries are inclusive on the upper side: exactly 50% is high and
// exactly 25% is medium.
func PriorityForRatio(dueCount, totalCards int) models.Priority {
	ratio := float64(dueCount) / float64(totalCards)
	switch {
	case ratio >= highRatio:
		return models.PriorityHigh
	case ratio >= mediumRatio:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// DueNow aggregates, per deck, the cards whose scheduled review time has
// passed.
func DueNow(cards []models.CardWithDeck, now time.Time) []models.DueReview {
	return classify(cards, func(next time.Time) bool {
		return !next.After(now)
	}, false)
}

// Overdue aggregates cards due by more than one full day. Overdue decks
// are always high priority regardless of their due ratio.
func Overdue(cards []models.CardWithDeck, now time.Time) []models.DueReview {
	cutoff := now.Add(-24 * time.Hour)
	return classify(cards, func(next time.Time) bool {
		return !next.After(cutoff)
	}, true)
}

// DueToday aggregates cards whose review falls within the calendar day
// containing now, in now's location.
func DueToday(cards []models.CardWithDeck, now time.Time) []models.DueReview {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	return classify(cards, func(next time.Time) bool {
		return !next.Before(start) && next.Before(end)
	}, false)
}

func classify(cards []models.CardWithDeck, due func(time.Time) bool, forceHigh bool) []models.DueReview {
	type deckAgg struct {
		name  string
		total int
		due   int
	}
	byDeck := make(map[int64]*deckAgg)
	for _, c := range cards {
		agg := byDeck[c.DeckID]
		if agg == nil {
			agg = &deckAgg{name: c.DeckName}
			byDeck[c.DeckID] = agg
		}
		agg.total++
		if due(c.NextReview) {
			agg.due++
		}
	}

	var out []models.DueReview
	for id, agg := range byDeck {
		// Decks with nothing due in this window are not emitted, which
		// also keeps totalCards strictly positive in every group.
		if agg.due == 0 {
			continue
		}
		priority := PriorityForRatio(agg.due, agg.total)
		if forceHigh {
			priority = models.PriorityHigh
		}
		out = append(out, models.DueReview{
			DeckID:     id,
			DeckName:   agg.name,
			DueCount:   agg.due,
			TotalCards: agg.total,
			Priority:   priority,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority.Rank() != out[j].Priority.Rank() {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		}
		if out[i].DueCount != out[j].DueCount {
			return out[i].DueCount > out[j].DueCount
		}
		return out[i].DeckID < out[j].DeckID
	})
	return out
}

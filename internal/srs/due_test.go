package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/srs"
)

var classifyNow = time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)

// deckCards builds a deck of total cards where the first due cards have
// nextReview at the given time and the rest are scheduled far in the future.
func deckCards(deckID int64, name string, total, due int, nextReview time.Time) []models.CardWithDeck {
	cards := make([]models.CardWithDeck, 0, total)
	for i := 0; i < total; i++ {
		next := classifyNow.AddDate(0, 1, 0)
		if i < due {
			next = nextReview
		}
		cards = append(cards, models.CardWithDeck{
			Card: models.Card{
				ID:     int64(i + 1),
				DeckID: deckID,
				ReviewState: models.ReviewState{
					EaseFactor:   models.DefaultEaseFactor,
					IntervalDays: models.DefaultIntervalDays,
					NextReview:   next,
				},
			},
			DeckName: name,
			UserID:   "user-1",
		})
	}
	return cards
}

func TestPriorityForRatio(t *testing.T) {
	tests := []struct {
		name     string
		due      int
		total    int
		expected models.Priority
	}{
		{"everything due", 10, 10, models.PriorityHigh},
		{"exactly half due", 50, 100, models.PriorityHigh},
		{"just under half due", 49, 100, models.PriorityMedium},
		{"exactly a quarter due", 25, 100, models.PriorityMedium},
		{"just under a quarter due", 24, 100, models.PriorityLow},
		{"single card due in a small deck", 1, 2, models.PriorityHigh},
		{"single card due in a big deck", 1, 100, models.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, srs.PriorityForRatio(tt.due, tt.total))
		})
	}
}

func TestDueNow_IncludesExactBoundary(t *testing.T) {
	cards := deckCards(1, "Biology", 4, 2, classifyNow)

	reviews := srs.DueNow(cards, classifyNow)

	require.Len(t, reviews, 1)
	assert.Equal(t, 2, reviews[0].DueCount, "cards due exactly now must count")
	assert.Equal(t, 4, reviews[0].TotalCards)
	assert.Equal(t, models.PriorityHigh, reviews[0].Priority)
}

func TestDueNow_ExcludesFutureCards(t *testing.T) {
	cards := deckCards(1, "Biology", 3, 1, classifyNow.Add(time.Minute))

	reviews := srs.DueNow(cards, classifyNow)

	assert.Empty(t, reviews, "decks with nothing due are not reported")
}

func TestOverdue_Cutoff(t *testing.T) {
	tests := []struct {
		name       string
		nextReview time.Time
		expectDue  bool
	}{
		{"exactly 24 hours past", classifyNow.Add(-24 * time.Hour), true},
		{"well past the cutoff", classifyNow.Add(-72 * time.Hour), true},
		{"only 23 hours past", classifyNow.Add(-23 * time.Hour), false},
		{"due now but not overdue", classifyNow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := deckCards(1, "History", 5, 1, tt.nextReview)
			reviews := srs.Overdue(cards, classifyNow)
			if tt.expectDue {
				require.Len(t, reviews, 1)
				assert.Equal(t, 1, reviews[0].DueCount)
			} else {
				assert.Empty(t, reviews)
			}
		})
	}
}

func TestOverdue_ForcesHighPriority(t *testing.T) {
	// 1 of 100 cards overdue: the ratio alone would be low priority.
	cards := deckCards(1, "Chemistry", 100, 1, classifyNow.Add(-48*time.Hour))

	reviews := srs.Overdue(cards, classifyNow)

	require.Len(t, reviews, 1)
	assert.Equal(t, models.PriorityHigh, reviews[0].Priority,
		"overdue decks are always high priority")
}

func TestDueToday_CalendarWindow(t *testing.T) {
	startOfDay := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		nextReview time.Time
		expectDue  bool
	}{
		{"midnight this morning", startOfDay, true},
		{"late tonight", startOfDay.Add(23*time.Hour + 59*time.Minute), true},
		{"yesterday evening", startOfDay.Add(-time.Hour), false},
		{"tomorrow midnight", startOfDay.AddDate(0, 0, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := deckCards(1, "Physics", 2, 1, tt.nextReview)
			reviews := srs.DueToday(cards, classifyNow)
			if tt.expectDue {
				require.Len(t, reviews, 1)
			} else {
				assert.Empty(t, reviews)
			}
		})
	}
}

func TestDueNow_Ordering(t *testing.T) {
	var cards []models.CardWithDeck
	// Low priority: 1 of 10 due.
	cards = append(cards, deckCards(1, "Low", 10, 1, classifyNow)...)
	// High priority, few due: 2 of 2 due.
	cards = append(cards, deckCards(2, "High small", 2, 2, classifyNow)...)
	// High priority, many due: 5 of 5 due.
	cards = append(cards, deckCards(3, "High big", 5, 5, classifyNow)...)
	// Medium: 3 of 10 due.
	cards = append(cards, deckCards(4, "Medium", 10, 3, classifyNow)...)

	reviews := srs.DueNow(cards, classifyNow)

	require.Len(t, reviews, 4)
	assert.Equal(t, "High big", reviews[0].DeckName, "higher due count wins within a priority")
	assert.Equal(t, "High small", reviews[1].DeckName)
	assert.Equal(t, "Medium", reviews[2].DeckName)
	assert.Equal(t, "Low", reviews[3].DeckName)
}

func TestDueNow_EmptyInput(t *testing.T) {
	assert.Empty(t, srs.DueNow(nil, classifyNow))
}

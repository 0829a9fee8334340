package models

import "time"

// Scheduling defaults applied when a card is created.
const (
	DefaultEaseFactor   = 2.5
	DefaultIntervalDays = 1
	MinEaseFactor       = 1.3
)

type Deck struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewState is the per-card spaced-repetition scheduling state.
// It is mutated exclusively by the srs package.
type ReviewState struct {
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	NextReview   time.Time `json:"next_review"`
}

// NewReviewState returns the initial scheduling state for a freshly
// created card: ease 2.5, interval 1 day, due immediately.
func NewReviewState(now time.Time) ReviewState {
	return ReviewState{
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: DefaultIntervalDays,
		Repetitions:  0,
		NextReview:   now,
	}
}

type Card struct {
	ID     int64  `json:"id"`
	DeckID int64  `json:"deck_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
	ReviewState
	CreatedAt time.Time `json:"created_at"`
}

// CardWithDeck carries the deck name alongside the card for
// classification and suggestion output.
type CardWithDeck struct {
	Card
	DeckName string `json:"deck_name"`
	UserID   string `json:"user_id"`
}

// Review is an append-only log entry recorded after a card is studied.
// It is never read back by the scheduler.
type Review struct {
	ID         int64     `json:"id"`
	CardID     int64     `json:"card_id"`
	Quality    int       `json:"quality"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

package repository

import (
	"context"
	"time"

	"github.com/studyflowhq/studyflow/internal/models"
)

// DeckRepository handles deck data access
type DeckRepository interface {
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context, userID string) ([]models.Deck, error)
	Insert(ctx context.Context, userID, name string) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// CardRepository handles flashcard data access, including the per-card
// scheduling state and the append-only review log.
type CardRepository interface {
	Get(ctx context.Context, id int64) (*models.CardWithDeck, error)
	Insert(ctx context.Context, card models.Card) (int64, error)
	InsertBatch(ctx context.Context, cards []models.Card) ([]int64, error)
	CardsForUser(ctx context.Context, userID string) ([]models.CardWithDeck, error)
	CardsForDeck(ctx context.Context, deckID int64) ([]models.Card, error)
	UpdateReviewState(ctx context.Context, cardID int64, state models.ReviewState) error
	InsertReviewLog(ctx context.Context, cardID int64, quality int, reviewedAt time.Time) error
}

// TaskRepository handles task data access
type TaskRepository interface {
	Get(ctx context.Context, id int64) (*models.Task, error)
	PendingTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Insert(ctx context.Context, userID string, draft models.TaskDraft) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

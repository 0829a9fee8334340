package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/studyflowhq/studyflow/internal/models"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Get(ctx context.Context, id int64) (*models.CardWithDeck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CardWithDeck), args.Error(1)
}

func (m *MockCardRepository) Insert(ctx context.Context, card models.Card) (int64, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepository) InsertBatch(ctx context.Context, cards []models.Card) ([]int64, error) {
	args := m.Called(ctx, cards)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockCardRepository) CardsForUser(ctx context.Context, userID string) ([]models.CardWithDeck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardWithDeck), args.Error(1)
}

func (m *MockCardRepository) CardsForDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) UpdateReviewState(ctx context.Context, cardID int64, state models.ReviewState) error {
	args := m.Called(ctx, cardID, state)
	return args.Error(0)
}

func (m *MockCardRepository) InsertReviewLog(ctx context.Context, cardID int64, quality int, reviewedAt time.Time) error {
	args := m.Called(ctx, cardID, quality, reviewedAt)
	return args.Error(0)
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/studyflowhq/studyflow/internal/errors"
	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/repository"
)

// CardDraft is the payload for creating a single card.
type CardDraft struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// DeckService handles deck and card management
type DeckService interface {
	CreateDeck(ctx context.Context, userID, name string) (*models.Deck, error)
	ListDecks(ctx context.Context, userID string) ([]models.Deck, error)
	DeleteDeck(ctx context.Context, userID string, deckID int64) error
	AddCards(ctx context.Context, userID string, deckID int64, drafts []CardDraft) ([]models.Card, error)
	DeckCards(ctx context.Context, userID string, deckID int64) ([]models.Card, error)
}

type deckService struct {
	decks repository.DeckRepository
	cards repository.CardRepository
	now   func() time.Time
}

// NewDeckService creates a new DeckService
func NewDeckService(decks repository.DeckRepository, cards repository.CardRepository) DeckService {
	return &deckService{decks: decks, cards: cards, now: time.Now}
}

func (s *deckService) CreateDeck(ctx context.Context, userID, name string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	id, err := s.decks.Insert(ctx, userID, name)
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, errors.NewDataAccessError("create deck", err)
	}
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, errors.NewDataAccessError("load deck", err)
	}
	log.Info("deck created: id=%d, name=%s", id, name)
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, userID string) ([]models.Deck, error) {
	decks, err := s.decks.List(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list decks: %v", err)
		return nil, errors.NewDataAccessError("list decks", err)
	}
	return decks, nil
}

// DeleteDeck removes a deck and, through the schema's cascade, all of
// its cards and their review history.
func (s *deckService) DeleteDeck(ctx context.Context, userID string, deckID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.ownedDeck(ctx, userID, deckID); err != nil {
		return err
	}
	if err := s.decks.Delete(ctx, deckID); err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewDataAccessError("delete deck", err)
	}
	log.Info("deck deleted: id=%d", deckID)
	return nil
}

// ownedDeck loads a deck and verifies ownership. Decks belonging to
// other users are reported as not found rather than forbidden.
func (s *deckService) ownedDeck(ctx context.Context, userID string, deckID int64) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewDataAccessError("load deck", err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, errors.NewNotFoundError("deck", deckID)
	}
	return deck, nil
}

func (s *deckService) AddCards(ctx context.Context, userID string, deckID int64, drafts []CardDraft) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	if len(drafts) == 0 {
		return nil, errors.NewValidationError("cards", "at least one card is required")
	}
	if _, err := s.ownedDeck(ctx, userID, deckID); err != nil {
		return nil, err
	}

	now := s.now()
	cards := make([]models.Card, 0, len(drafts))
	for _, d := range drafts {
		if strings.TrimSpace(d.Front) == "" || strings.TrimSpace(d.Back) == "" {
			return nil, errors.NewValidationError("cards", "front and back cannot be empty")
		}
		cards = append(cards, models.Card{
			DeckID:      deckID,
			Front:       d.Front,
			Back:        d.Back,
			ReviewState: models.NewReviewState(now),
		})
	}

	ids, err := s.cards.InsertBatch(ctx, cards)
	if err != nil {
		log.Error("failed to insert cards: %v", err)
		return nil, errors.NewDataAccessError("insert cards", err)
	}
	for i := range cards {
		cards[i].ID = ids[i]
		cards[i].CreatedAt = now
	}
	log.Info("added %d cards to deck %d", len(cards), deckID)
	return cards, nil
}

func (s *deckService) DeckCards(ctx context.Context, userID string, deckID int64) ([]models.Card, error) {
	if _, err := s.ownedDeck(ctx, userID, deckID); err != nil {
		return nil, err
	}
	cards, err := s.cards.CardsForDeck(ctx, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load deck cards: %v", err)
		return nil, errors.NewDataAccessError("load cards", err)
	}
	return cards, nil
}

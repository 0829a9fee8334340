package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardWithDeckColumns = `
    c.id, c.deck_id, c.front, c.back, c.ease_factor, c.interval_days, c.repetitions, c.next_review, c.created_at,
    d.name, d.user_id`

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.CardWithDeck, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching card: id=%d", id)

	var c models.CardWithDeck
	err := r.db.QueryRowContext(ctx, `
SELECT`+cardWithDeckColumns+`
FROM cards c
JOIN decks d ON d.id = c.deck_id
WHERE c.id = ?
`, id).Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.EaseFactor, &c.IntervalDays, &c.Repetitions, &c.NextReview, &c.CreatedAt,
		&c.DeckName, &c.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, front, back, ease_factor, interval_days, repetitions, next_review)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, c.DeckID, c.Front, c.Back, c.EaseFactor, c.IntervalDays, c.Repetitions, c.NextReview)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) InsertBatch(ctx context.Context, cards []models.Card) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting %d cards", len(cards))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return nil, err
	}
	defer tx.Rollback()

	ids := make([]int64, 0, len(cards))
	for _, c := range cards {
		res, err := tx.ExecContext(ctx, `
INSERT INTO cards (deck_id, front, back, ease_factor, interval_days, repetitions, next_review)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, c.DeckID, c.Front, c.Back, c.EaseFactor, c.IntervalDays, c.Repetitions, c.NextReview)
		if err != nil {
			log.Error("failed to insert card in batch: %v", err)
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit card batch: %v", err)
		return nil, err
	}
	return ids, nil
}

func (r *cardRepository) CardsForUser(ctx context.Context, userID string) ([]models.CardWithDeck, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching cards for user: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT`+cardWithDeckColumns+`
FROM cards c
JOIN decks d ON d.id = c.deck_id
WHERE d.user_id = ?
ORDER BY c.id
`, userID)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.CardWithDeck
	for rows.Next() {
		var c models.CardWithDeck
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.EaseFactor, &c.IntervalDays, &c.Repetitions, &c.NextReview, &c.CreatedAt,
			&c.DeckName, &c.UserID); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) CardsForDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching cards for deck: deck_id=%d", deckID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, deck_id, front, back, ease_factor, interval_days, repetitions, next_review, created_at
FROM cards
WHERE deck_id = ?
ORDER BY id
`, deckID)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.EaseFactor, &c.IntervalDays, &c.Repetitions, &c.NextReview, &c.CreatedAt); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) UpdateReviewState(ctx context.Context, cardID int64, state models.ReviewState) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating review state: card_id=%d, interval=%d, ease=%.2f", cardID, state.IntervalDays, state.EaseFactor)

	res, err := r.db.ExecContext(ctx, `
UPDATE cards
SET ease_factor = ?, interval_days = ?, repetitions = ?, next_review = ?
WHERE id = ?
`, state.EaseFactor, state.IntervalDays, state.Repetitions, state.NextReview, cardID)
	if err != nil {
		log.Error("failed to update review state: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *cardRepository) InsertReviewLog(ctx context.Context, cardID int64, quality int, reviewedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting review log: card_id=%d, quality=%d", cardID, quality)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO reviews (card_id, quality, reviewed_at)
VALUES (?, ?, ?)
`, cardID, quality, reviewedAt)
	if err != nil {
		log.Error("failed to insert review log: %v", err)
	}
	return err
}

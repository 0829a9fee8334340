package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, created_at FROM decks WHERE id = ?
`, id).Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context, userID string) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, created_at FROM decks WHERE user_id = ? ORDER BY name
`, userID)
	if err != nil {
		log.Error("failed to query decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, userID, name string) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: user_id=%s, name=%s", userID, name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (user_id, name) VALUES (?, ?)
`, userID, name)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
	}
	return err
}

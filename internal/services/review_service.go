package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/studyflowhq/studyflow/internal/errors"
	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/repository"
	"github.com/studyflowhq/studyflow/internal/srs"
	"github.com/studyflowhq/studyflow/internal/worker"
)

// ReviewService handles the single-card study flow: validate the quality
// score, advance the scheduling state, persist it, and append a review
// log entry.
type ReviewService interface {
	StudyCard(ctx context.Context, userID string, cardID int64, quality int) (*models.Card, error)
}

type reviewService struct {
	cards repository.CardRepository
	pool  *worker.Pool
	now   func() time.Time
}

// NewReviewService creates a new ReviewService. The pool is used for
// best-effort review-log appends; pass nil to append inline instead.
func NewReviewService(cards repository.CardRepository, pool *worker.Pool) ReviewService {
	return &reviewService{cards: cards, pool: pool, now: time.Now}
}

func (s *reviewService) StudyCard(ctx context.Context, userID string, cardID int64, quality int) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("studying card: card_id=%d, quality=%d", cardID, quality)

	// Out-of-range quality is a caller error; fail fast rather than clamp.
	if !srs.ValidQuality(quality) {
		return nil, errors.NewValidationError("quality", "must be between 1 and 5")
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		log.Error("failed to load card: %v", err)
		return nil, errors.NewDataAccessError("load card", err)
	}
	if card == nil || card.UserID != userID {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	now := s.now()
	state := srs.Apply(card.ReviewState, quality, now)
	log.Debug("applied review, new interval=%d days, ease_factor=%.2f", state.IntervalDays, state.EaseFactor)

	// The state write is authoritative and must land before the log
	// entry counts for anything.
	if err := s.cards.UpdateReviewState(ctx, cardID, state); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("card", cardID)
		}
		log.Error("failed to persist review state: %v", err)
		return nil, errors.NewDataAccessError("save review state", err)
	}

	s.appendReviewLog(ctx, cardID, quality, now)

	updated := card.Card
	updated.ReviewState = state
	return &updated, nil
}

// appendReviewLog records the review for history and analytics. This is
// best-effort: a failure or a full queue is logged and swallowed, never
// rolled back into the state write.
func (s *reviewService) appendReviewLog(ctx context.Context, cardID int64, quality int, reviewedAt time.Time) {
	log := logger.FromContext(ctx)
	if s.pool == nil {
		if err := s.cards.InsertReviewLog(ctx, cardID, quality, reviewedAt); err != nil {
			log.Warn("failed to append review log: %v", err)
		}
		return
	}
	job := &reviewLogJob{cards: s.cards, cardID: cardID, quality: quality, reviewedAt: reviewedAt}
	if !s.pool.TrySubmit(job) {
		log.Warn("review log queue full, dropping entry for card %d", cardID)
	}
}

type reviewLogJob struct {
	cards      repository.CardRepository
	cardID     int64
	quality    int
	reviewedAt time.Time
}

func (j *reviewLogJob) Name() string {
	return fmt.Sprintf("review-log-append card=%d", j.cardID)
}

func (j *reviewLogJob) Run(ctx context.Context) error {
	return j.cards.InsertReviewLog(ctx, j.cardID, j.quality, j.reviewedAt)
}

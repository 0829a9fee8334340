package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/studyflowhq/studyflow/internal/errors"
	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/repository"
	"github.com/studyflowhq/studyflow/internal/session"
)

// SessionService manages in-memory guided study sessions. Sessions are
// practice drills only: nothing they record touches the persisted
// scheduling state. Each session is owned by one user flow; the mutex
// here guards only the registry map.
type SessionService interface {
	Start(ctx context.Context, userID string, deckID int64, stages []session.Stage, shuffle bool) (string, session.Snapshot, error)
	Snapshot(ctx context.Context, userID, id string) (session.Snapshot, error)
	Choices(ctx context.Context, userID, id string) ([]string, error)
	AnswerOutcome(ctx context.Context, userID, id string, correct bool) (session.Snapshot, error)
	AnswerTyped(ctx context.Context, userID, id, text string) (session.Verdict, error)
	ResolveClose(ctx context.Context, userID, id string, accepted bool) (session.Snapshot, error)
	Commit(ctx context.Context, userID, id string) (session.Snapshot, error)
	Summary(ctx context.Context, userID, id string) (session.Summary, error)
	Cancel(ctx context.Context, userID, id string) error
}

type sessionEntry struct {
	userID string
	sess   *session.Session
}

type sessionService struct {
	decks repository.DeckRepository
	cards repository.CardRepository

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionService creates a new SessionService
func NewSessionService(decks repository.DeckRepository, cards repository.CardRepository) SessionService {
	return &sessionService{
		decks:    decks,
		cards:    cards,
		sessions: make(map[string]*sessionEntry),
	}
}

func (s *sessionService) Start(ctx context.Context, userID string, deckID int64, stages []session.Stage, shuffle bool) (string, session.Snapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting session: deck_id=%d, stages=%v", deckID, stages)

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return "", session.Snapshot{}, errors.NewDataAccessError("load deck", err)
	}
	if deck == nil || deck.UserID != userID {
		return "", session.Snapshot{}, errors.NewNotFoundError("deck", deckID)
	}

	cards, err := s.cards.CardsForDeck(ctx, deckID)
	if err != nil {
		return "", session.Snapshot{}, errors.NewDataAccessError("load cards", err)
	}
	if len(cards) == 0 {
		return "", session.Snapshot{}, errors.NewValidationError("deck", "has no cards to study")
	}

	var opts []session.Option
	if shuffle {
		opts = append(opts, session.WithShuffle())
	}
	sess, err := session.New(cards, stages, opts...)
	if err != nil {
		return "", session.Snapshot{}, errors.NewValidationError("stages", err.Error())
	}
	if err := sess.Start(); err != nil {
		return "", session.Snapshot{}, errors.NewInternalError(err)
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &sessionEntry{userID: userID, sess: sess}
	s.mu.Unlock()

	log.Info("session started: id=%s, cards=%d, stages=%d", id, len(cards), len(stages))
	return id, sess.Snapshot(), nil
}

func (s *sessionService) get(userID, id string) (*session.Session, error) {
	s.mu.Lock()
	entry := s.sessions[id]
	s.mu.Unlock()
	if entry == nil || entry.userID != userID {
		return nil, errors.NewNotFoundError("session", id)
	}
	return entry.sess, nil
}

func (s *sessionService) Snapshot(ctx context.Context, userID, id string) (session.Snapshot, error) {
	sess, err := s.get(userID, id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) Choices(ctx context.Context, userID, id string) ([]string, error) {
	sess, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}
	choices, err := sess.Choices()
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	return choices, nil
}

func (s *sessionService) AnswerOutcome(ctx context.Context, userID, id string, correct bool) (session.Snapshot, error) {
	sess, err := s.get(userID, id)
	if err != nil {
		return session.Snapshot{}, err
	}
	if correct {
		err = sess.MarkCorrect()
	} else {
		err = sess.MarkWrong()
	}
	if err != nil {
		return session.Snapshot{}, errors.NewBadRequestError(err.Error())
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) AnswerTyped(ctx context.Context, userID, id, text string) (session.Verdict, error) {
	sess, err := s.get(userID, id)
	if err != nil {
		return session.VerdictWrong, err
	}
	card, err := sess.Current()
	if err != nil {
		return session.VerdictWrong, errors.NewBadRequestError(err.Error())
	}

	verdict := session.EvaluateTyped(text, card.Back)
	switch verdict {
	case session.VerdictCorrect:
		err = sess.MarkCorrect()
	case session.VerdictWrong:
		err = sess.MarkWrong()
	case session.VerdictClose:
		// The user adjudicates a near miss via ResolveClose.
	}
	if err != nil {
		return session.VerdictWrong, errors.NewBadRequestError(err.Error())
	}
	return verdict, nil
}

func (s *sessionService) ResolveClose(ctx context.Context, userID, id string, accepted bool) (session.Snapshot, error) {
	sess, err := s.get(userID, id)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.MarkClose(accepted); err != nil {
		return session.Snapshot{}, errors.NewBadRequestError(err.Error())
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) Commit(ctx context.Context, userID, id string) (session.Snapshot, error) {
	sess, err := s.get(userID, id)
	if err != nil {
		return session.Snapshot{}, err
	}
	if err := sess.Commit(); err != nil {
		return session.Snapshot{}, errors.NewBadRequestError(err.Error())
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) Summary(ctx context.Context, userID, id string) (session.Summary, error) {
	sess, err := s.get(userID, id)
	if err != nil {
		return session.Summary{}, err
	}
	summary, err := sess.Summary()
	if err != nil {
		return session.Summary{}, errors.NewBadRequestError(err.Error())
	}
	return summary, nil
}

func (s *sessionService) Cancel(ctx context.Context, userID, id string) error {
	sess, err := s.get(userID, id)
	if err != nil {
		return err
	}
	if err := sess.Cancel(); err != nil {
		return errors.NewBadRequestError(err.Error())
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	logger.FromContext(ctx).Info("session cancelled: id=%s", id)
	return nil
}

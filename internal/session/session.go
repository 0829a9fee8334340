// Package session implements the guided study session state machine: a
// working deck of cards is drilled stage by stage, wrong answers are
// requeued until every card is answered correctly, then the deck resets
// for the next configured stage.
package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/studyflowhq/studyflow/internal/models"
)

// Stage is one question-presentation mode within a session.
type Stage string

const (
	StageFlip           Stage = "flip"
	StageMultipleChoice Stage = "multiple_choice"
	StageTyping         Stage = "typing"
	StageMatching       Stage = "matching"
)

// ValidStage reports whether s names a known stage.
func ValidStage(s Stage) bool {
	switch s {
	case StageFlip, StageMultipleChoice, StageTyping, StageMatching:
		return true
	}
	return false
}

// Status is the lifecycle state of a session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusActive    Status = "active"
	StatusComplete  Status = "complete"
	StatusCancelled Status = "cancelled"
)

// Result is the per-card-per-stage outcome.
type Result int

const (
	ResultPending Result = iota
	ResultCorrect
	ResultWrong
)

type resultKey struct {
	cardID int64
	stage  Stage
}

type pendingMark struct {
	correct bool
}

// Summary is emitted when a session completes.
type Summary struct {
	Correct     int `json:"correct"`
	Close       int `json:"close"`
	Wrong       int `json:"wrong"`
	CardsMissed int `json:"cards_missed"` // distinct cards wrong at least once
	Rounds      int `json:"rounds"`
}

// Session drives one guided study pass over a fixed card set. It is
// owned by a single caller and is not safe for concurrent use.
type Session struct {
	cards   []models.Card
	stages  []Stage
	shuffle bool
	rng     *rand.Rand

	status   Status
	stageIdx int
	working  []models.Card
	cardIdx  int
	results  map[resultKey]Result
	pending  *pendingMark

	correctCount int
	closeCount   int
	wrongCount   int
	everWrong    map[int64]bool
	rounds       int
}

// Option configures a Session.
type Option func(*Session)

// WithShuffle shuffles the working deck at start and at each stage reset.
func WithShuffle() Option {
	return func(s *Session) { s.shuffle = true }
}

// WithRand sets the random source used for shuffling and choice
// generation. Useful for deterministic tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// New creates an idle session over the given card set and stage order.
// Call Start to begin.
func New(cards []models.Card, stages []Stage, opts ...Option) (*Session, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("session needs at least one card")
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("session needs at least one stage")
	}
	for _, st := range stages {
		if !ValidStage(st) {
			return nil, fmt.Errorf("unknown stage %q", st)
		}
	}

	s := &Session{
		cards:     append([]models.Card(nil), cards...),
		stages:    append([]Stage(nil), stages...),
		status:    StatusIdle,
		results:   make(map[resultKey]Result),
		everWrong: make(map[int64]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s, nil
}

// Start transitions the session from idle to active on the first stage
// with the full card set as the working deck and all results pending.
func (s *Session) Start() error {
	if s.status != StatusIdle {
		return fmt.Errorf("cannot start session in state %s", s.status)
	}
	for _, st := range s.stages {
		for _, c := range s.cards {
			s.results[resultKey{c.ID, st}] = ResultPending
		}
	}
	s.status = StatusActive
	s.stageIdx = 0
	s.resetWorkingDeck()
	s.rounds = 1
	return nil
}

// Status returns the session lifecycle state.
func (s *Session) Status() Status { return s.status }

// Stage returns the current stage. Only valid while active.
func (s *Session) Stage() (Stage, error) {
	if s.status != StatusActive {
		return "", fmt.Errorf("session is %s, not active", s.status)
	}
	return s.stages[s.stageIdx], nil
}

// Current returns the card being presented. Only valid while active.
func (s *Session) Current() (models.Card, error) {
	if s.status != StatusActive {
		return models.Card{}, fmt.Errorf("session is %s, not active", s.status)
	}
	return s.working[s.cardIdx], nil
}

// Result returns the recorded outcome for a card in a stage.
func (s *Session) Result(cardID int64, stage Stage) Result {
	return s.results[resultKey{cardID, stage}]
}

// MarkCorrect records a correct answer for the current card. The queue is
// not mutated until Commit, so the caller can reveal feedback first.
func (s *Session) MarkCorrect() error {
	return s.mark(true, false)
}

// MarkWrong records a wrong answer for the current card.
func (s *Session) MarkWrong() error {
	return s.mark(false, false)
}

// MarkClose records a near-miss typed answer adjudicated by the user.
func (s *Session) MarkClose(accepted bool) error {
	return s.mark(accepted, true)
}

func (s *Session) mark(correct, wasClose bool) error {
	if s.status != StatusActive {
		return fmt.Errorf("session is %s, not active", s.status)
	}
	if s.pending != nil {
		return fmt.Errorf("answer already recorded; commit before answering again")
	}

	card := s.working[s.cardIdx]
	stage := s.stages[s.stageIdx]
	key := resultKey{card.ID, stage}
	if correct {
		s.results[key] = ResultCorrect
	} else {
		s.results[key] = ResultWrong
		s.everWrong[card.ID] = true
	}

	switch {
	case wasClose:
		s.closeCount++
	case correct:
		s.correctCount++
	default:
		s.wrongCount++
	}

	s.pending = &pendingMark{correct: correct}
	return nil
}

// Commit applies the recorded answer to the working deck: a correct card
// is removed, a wrong card is requeued to the tail for another try in the
// same stage. When the deck empties, the session advances to the next
// stage with the full original set, or completes after the last stage.
func (s *Session) Commit() error {
	if s.status != StatusActive {
		return fmt.Errorf("session is %s, not active", s.status)
	}
	if s.pending == nil {
		return fmt.Errorf("no answer to commit")
	}
	correct := s.pending.correct
	s.pending = nil

	if correct {
		s.working = append(s.working[:s.cardIdx], s.working[s.cardIdx+1:]...)
		if len(s.working) == 0 {
			s.advanceStage()
			return nil
		}
	} else {
		card := s.working[s.cardIdx]
		s.working = append(s.working[:s.cardIdx], s.working[s.cardIdx+1:]...)
		s.working = append(s.working, card)
	}

	if s.cardIdx >= len(s.working) {
		s.cardIdx = 0
		s.rounds++
	}
	return nil
}

func (s *Session) advanceStage() {
	s.stageIdx++
	if s.stageIdx >= len(s.stages) {
		s.status = StatusComplete
		s.working = nil
		s.cardIdx = 0
		return
	}
	s.resetWorkingDeck()
	s.rounds++
}

// resetWorkingDeck restores the full original card set for a new stage.
func (s *Session) resetWorkingDeck() {
	s.working = append([]models.Card(nil), s.cards...)
	s.cardIdx = 0
	if s.shuffle {
		s.rng.Shuffle(len(s.working), func(i, j int) {
			s.working[i], s.working[j] = s.working[j], s.working[i]
		})
	}
}

// Cancel abandons the session. Nothing is persisted.
func (s *Session) Cancel() error {
	if s.status == StatusComplete || s.status == StatusCancelled {
		return fmt.Errorf("session already %s", s.status)
	}
	s.status = StatusCancelled
	s.working = nil
	s.pending = nil
	return nil
}

// Summary reports the session totals. Only valid once complete.
func (s *Session) Summary() (Summary, error) {
	if s.status != StatusComplete {
		return Summary{}, fmt.Errorf("session is %s, not complete", s.status)
	}
	return Summary{
		Correct:     s.correctCount,
		Close:       s.closeCount,
		Wrong:       s.wrongCount,
		CardsMissed: len(s.everWrong),
		Rounds:      s.rounds,
	}, nil
}

// Snapshot is a read-only view of the session for presentation.
type Snapshot struct {
	Status      Status       `json:"status"`
	Stage       Stage        `json:"stage,omitempty"`
	StageIndex  int          `json:"stage_index"`
	TotalStages int          `json:"total_stages"`
	Remaining   int          `json:"remaining"`
	Round       int          `json:"round"`
	Card        *models.Card `json:"card,omitempty"`
}

// Snapshot returns the current presentation state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Status:      s.status,
		StageIndex:  s.stageIdx,
		TotalStages: len(s.stages),
		Remaining:   len(s.working),
		Round:       s.rounds,
	}
	if s.status == StatusActive {
		snap.Stage = s.stages[s.stageIdx]
		card := s.working[s.cardIdx]
		snap.Card = &card
	}
	return snap
}

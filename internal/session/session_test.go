package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/session"
)

func threeCards() []models.Card {
	return []models.Card{
		{ID: 1, Front: "2+2", Back: "4"},
		{ID: 2, Front: "3+3", Back: "6"},
		{ID: 3, Front: "5+5", Back: "10"},
	}
}

func startedSession(t *testing.T, cards []models.Card, stages []session.Stage) *session.Session {
	t.Helper()
	s, err := session.New(cards, stages)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s
}

// answer marks and commits the current card in one step.
func answer(t *testing.T, s *session.Session, correct bool) {
	t.Helper()
	if correct {
		require.NoError(t, s.MarkCorrect())
	} else {
		require.NoError(t, s.MarkWrong())
	}
	require.NoError(t, s.Commit())
}

func TestNew_Validation(t *testing.T) {
	_, err := session.New(nil, []session.Stage{session.StageFlip})
	assert.Error(t, err, "a session needs cards")

	_, err = session.New(threeCards(), nil)
	assert.Error(t, err, "a session needs stages")

	_, err = session.New(threeCards(), []session.Stage{"karaoke"})
	assert.Error(t, err, "unknown stages are rejected")
}

func TestSession_Lifecycle(t *testing.T) {
	s, err := session.New(threeCards(), []session.Stage{session.StageFlip})
	require.NoError(t, err)
	assert.Equal(t, session.StatusIdle, s.Status())

	_, err = s.Current()
	assert.Error(t, err, "no current card before start")

	require.NoError(t, s.Start())
	assert.Equal(t, session.StatusActive, s.Status())
	assert.Error(t, s.Start(), "double start is rejected")

	stage, err := s.Stage()
	require.NoError(t, err)
	assert.Equal(t, session.StageFlip, stage)
}

func TestSession_AllCorrectCompletes(t *testing.T) {
	s := startedSession(t, threeCards(), []session.Stage{session.StageFlip})

	for i := 0; i < 3; i++ {
		answer(t, s, true)
	}

	assert.Equal(t, session.StatusComplete, s.Status())
	summary, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Correct)
	assert.Equal(t, 0, summary.Wrong)
	assert.Equal(t, 0, summary.CardsMissed)
	assert.Equal(t, 1, summary.Rounds)
}

func TestSession_WrongCardRequeuedToTail(t *testing.T) {
	s := startedSession(t, threeCards(), []session.Stage{session.StageFlip})

	first, err := s.Current()
	require.NoError(t, err)
	answer(t, s, false)

	// The missed card comes back after the remaining two.
	answer(t, s, true)
	answer(t, s, true)

	again, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID, "wrong card must return at the tail")
	assert.Equal(t, 1, s.Snapshot().Remaining)

	answer(t, s, true)
	assert.Equal(t, session.StatusComplete, s.Status())

	summary, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Correct)
	assert.Equal(t, 1, summary.Wrong)
	assert.Equal(t, 1, summary.CardsMissed, "the same card missed once counts once")
}

func TestSession_StageAdvanceRestoresFullDeck(t *testing.T) {
	s := startedSession(t, threeCards(), []session.Stage{session.StageFlip, session.StageTyping})

	// Miss one card in the first stage, then clear it.
	answer(t, s, false)
	answer(t, s, true)
	answer(t, s, true)
	answer(t, s, true)

	require.Equal(t, session.StatusActive, s.Status())
	stage, err := s.Stage()
	require.NoError(t, err)
	assert.Equal(t, session.StageTyping, stage)
	assert.Equal(t, 3, s.Snapshot().Remaining,
		"the next stage drills the full original set, not just the survivors")

	for i := 0; i < 3; i++ {
		answer(t, s, true)
	}
	assert.Equal(t, session.StatusComplete, s.Status())
}

func TestSession_ResultsPerStage(t *testing.T) {
	s := startedSession(t, threeCards(), []session.Stage{session.StageFlip, session.StageTyping})

	first, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, session.ResultPending, s.Result(first.ID, session.StageFlip))

	answer(t, s, false)
	assert.Equal(t, session.ResultWrong, s.Result(first.ID, session.StageFlip))
	assert.Equal(t, session.ResultPending, s.Result(first.ID, session.StageTyping),
		"a miss in one stage does not touch another stage's result")
}

func TestSession_MarkCommitDiscipline(t *testing.T) {
	s := startedSession(t, threeCards(), []session.Stage{session.StageFlip})

	assert.Error(t, s.Commit(), "commit without a recorded answer fails")

	require.NoError(t, s.MarkCorrect())
	assert.Error(t, s.MarkWrong(), "a second mark before commit fails")

	require.NoError(t, s.Commit())
	assert.Error(t, s.Commit(), "the mark is consumed by commit")
}

func TestSession_CloseAnswers(t *testing.T) {
	s := startedSession(t, threeCards(), []session.Stage{session.StageTyping})

	require.NoError(t, s.MarkClose(true))
	require.NoError(t, s.Commit())
	answer(t, s, true)

	require.NoError(t, s.MarkClose(false))
	require.NoError(t, s.Commit())
	answer(t, s, true)

	assert.Equal(t, session.StatusComplete, s.Status())
	summary, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Close, "both accepted and rejected near misses count as close")
	assert.Equal(t, 2, summary.Correct)
	assert.Equal(t, 0, summary.Wrong)
	assert.Equal(t, 1, summary.CardsMissed, "a rejected near miss still requeues its card")
}

func TestSession_Cancel(t *testing.T) {
	s := startedSession(t, threeCards(), []session.Stage{session.StageFlip})

	require.NoError(t, s.Cancel())
	assert.Equal(t, session.StatusCancelled, s.Status())
	assert.Error(t, s.Cancel(), "cancelling twice fails")

	_, err := s.Summary()
	assert.Error(t, err, "cancelled sessions have no summary")
	assert.Error(t, s.MarkCorrect())
}

func TestSession_CancelAfterComplete(t *testing.T) {
	s := startedSession(t, []models.Card{{ID: 1, Front: "a", Back: "b"}}, []session.Stage{session.StageFlip})
	answer(t, s, true)
	require.Equal(t, session.StatusComplete, s.Status())

	assert.Error(t, s.Cancel())
}

func TestSession_Snapshot(t *testing.T) {
	s := startedSession(t, threeCards(), []session.Stage{session.StageFlip, session.StageTyping})

	snap := s.Snapshot()
	assert.Equal(t, session.StatusActive, snap.Status)
	assert.Equal(t, session.StageFlip, snap.Stage)
	assert.Equal(t, 0, snap.StageIndex)
	assert.Equal(t, 2, snap.TotalStages)
	assert.Equal(t, 3, snap.Remaining)
	assert.Equal(t, 1, snap.Round)
	require.NotNil(t, snap.Card)

	answer(t, s, true)
	assert.Equal(t, 2, s.Snapshot().Remaining)
}

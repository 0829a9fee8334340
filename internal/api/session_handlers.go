package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyflowhq/studyflow/internal/errors"
	"github.com/studyflowhq/studyflow/internal/session"
)

type startSessionRequest struct {
	DeckID  int64    `json:"deck_id" validate:"required"`
	Stages  []string `json:"stages" validate:"required,min=1,dive,oneof=flip multiple_choice typing matching"`
	Shuffle bool     `json:"shuffle"`
}

// answerRequest reports the outcome for the current card. Kind selects
// the flow: "outcome" for flip/choice/matching answers the caller has
// already judged, "typed" for free-text evaluation, "close" to resolve
// a near-miss typed answer.
type answerRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=outcome typed close"`
	Correct  *bool  `json:"correct,omitempty"`
	Text     string `json:"text,omitempty"`
	Accepted *bool  `json:"accepted,omitempty"`
}

type startSessionResponse struct {
	ID       string           `json:"id"`
	Snapshot session.Snapshot `json:"snapshot"`
}

type answerResponse struct {
	Verdict  string            `json:"verdict,omitempty"`
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	stages := make([]session.Stage, len(req.Stages))
	for i, st := range req.Stages {
		stages[i] = session.Stage(st)
	}

	id, snap, err := s.SessionService.Start(r.Context(), userFromContext(r.Context()), req.DeckID, stages, req.Shuffle)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, startSessionResponse{ID: id, Snapshot: snap})
}

func (s *Server) handleSessionSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.SessionService.Snapshot(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, snap)
}

func (s *Server) handleSessionChoices(w http.ResponseWriter, r *http.Request) {
	choices, err := s.SessionService.Choices(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, choices)
}

func (s *Server) handleSessionAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	ctx := r.Context()
	userID := userFromContext(ctx)
	id := chi.URLParam(r, "id")

	switch req.Kind {
	case "outcome":
		if req.Correct == nil {
			handleError(w, r, errors.NewValidationError("correct", "required for outcome answers"))
			return
		}
		snap, err := s.SessionService.AnswerOutcome(ctx, userID, id, *req.Correct)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondData(w, r, http.StatusOK, answerResponse{Snapshot: &snap})

	case "typed":
		verdict, err := s.SessionService.AnswerTyped(ctx, userID, id, req.Text)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondData(w, r, http.StatusOK, answerResponse{Verdict: verdict.String()})

	case "close":
		if req.Accepted == nil {
			handleError(w, r, errors.NewValidationError("accepted", "required for close answers"))
			return
		}
		snap, err := s.SessionService.ResolveClose(ctx, userID, id, *req.Accepted)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondData(w, r, http.StatusOK, answerResponse{Snapshot: &snap})
	}
}

func (s *Server) handleSessionCommit(w http.ResponseWriter, r *http.Request) {
	snap, err := s.SessionService.Commit(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, snap)
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.SessionService.Summary(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, summary)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	if err := s.SessionService.Cancel(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]string{"status": "cancelled"})
}

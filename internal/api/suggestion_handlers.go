package api

import (
	"net/http"
	"strconv"

	"github.com/studyflowhq/studyflow/internal/errors"
	"github.com/studyflowhq/studyflow/internal/models"
)

type acceptSuggestionRequest struct {
	Suggestion models.SmartSuggestion `json:"suggestion"`
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	limit := s.suggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			handleError(w, r, errors.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	suggestions, err := s.SuggestionService.Suggestions(r.Context(), userFromContext(r.Context()), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, suggestions)
}

func (s *Server) handleAcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	var req acceptSuggestionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	task, err := s.SuggestionService.AcceptSuggestion(r.Context(), userFromContext(r.Context()), req.Suggestion)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, task)
}

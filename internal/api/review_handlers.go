package api

import (
	"net/http"

	"github.com/studyflowhq/studyflow/internal/logger"
)

type reviewRequest struct {
	Quality int `json:"quality" validate:"required,min=1,max=5"`
}

func (s *Server) handleDueReviews(w http.ResponseWriter, r *http.Request) {
	overview, err := s.SuggestionService.DueReviews(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, overview)
}

func (s *Server) handleStudyCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	cardID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.ReviewService.StudyCard(r.Context(), userFromContext(r.Context()), cardID, req.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card studied: card_id=%d, quality=%d, next_review=%s", cardID, req.Quality, card.NextReview.Format("2006-01-02"))
	respondData(w, r, http.StatusOK, card)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/studyflowhq/studyflow/internal/services"
)

// Server wires the HTTP routes to the service layer.
type Server struct {
	DeckService       services.DeckService
	ReviewService     services.ReviewService
	SuggestionService services.SuggestionService
	SessionService    services.SessionService

	suggestionLimit int
	validate        *validator.Validate
}

// NewServer creates a Server with request validation configured.
// suggestionLimit is the default suggestion count when a request carries
// no limit parameter.
func NewServer(decks services.DeckService, reviews services.ReviewService, suggestions services.SuggestionService, sessions services.SessionService, suggestionLimit int) *Server {
	if suggestionLimit < 1 {
		suggestionLimit = 3
	}
	return &Server{
		DeckService:       decks,
		ReviewService:     reviews,
		SuggestionService: suggestions,
		SessionService:    sessions,
		suggestionLimit:   suggestionLimit,
		validate:          validator.New(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(userMiddleware)

		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Delete("/decks/{id}", s.handleDeleteDeck)
		r.Get("/decks/{id}/cards", s.handleDeckCards)
		r.Post("/decks/{id}/cards", s.handleAddCards)

		r.Get("/reviews/due", s.handleDueReviews)
		r.Post("/cards/{id}/review", s.handleStudyCard)

		r.Get("/suggestions", s.handleSuggestions)
		r.Post("/suggestions/accept", s.handleAcceptSuggestion)

		r.Post("/sessions", s.handleStartSession)
		r.Get("/sessions/{id}", s.handleSessionSnapshot)
		r.Get("/sessions/{id}/choices", s.handleSessionChoices)
		r.Post("/sessions/{id}/answer", s.handleSessionAnswer)
		r.Post("/sessions/{id}/commit", s.handleSessionCommit)
		r.Get("/sessions/{id}/summary", s.handleSessionSummary)
		r.Delete("/sessions/{id}", s.handleCancelSession)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/studyflowhq/studyflow/internal/errors"
	"github.com/studyflowhq/studyflow/internal/services"
)

type createDeckRequest struct {
	Name string `json:"name" validate:"required"`
}

type addCardsRequest struct {
	Cards []services.CardDraft `json:"cards" validate:"required,min=1"`
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.DeckService.ListDecks(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, decks)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.CreateDeck(r.Context(), userFromContext(r.Context()), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.DeckService.DeleteDeck(r.Context(), userFromContext(r.Context()), deckID); err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleDeckCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.DeckService.DeckCards(r.Context(), userFromContext(r.Context()), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, cards)
}

func (s *Server) handleAddCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req addCardsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.DeckService.AddCards(r.Context(), userFromContext(r.Context()), deckID, req.Cards)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, cards)
}

// pathID parses a numeric {name} URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid " + name + " parameter")
	}
	return id, nil
}

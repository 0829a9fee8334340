package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/services"
)

// stubSuggestionService records the limit each Suggestions call receives.
type stubSuggestionService struct {
	gotLimit int
}

func (s *stubSuggestionService) DueReviews(ctx context.Context, userID string) (*services.DueOverview, error) {
	return &services.DueOverview{}, nil
}

func (s *stubSuggestionService) Suggestions(ctx context.Context, userID string, limit int) ([]models.SmartSuggestion, error) {
	s.gotLimit = limit
	return []models.SmartSuggestion{}, nil
}

func (s *stubSuggestionService) AcceptSuggestion(ctx context.Context, userID string, suggestion models.SmartSuggestion) (*models.Task, error) {
	return &models.Task{}, nil
}

func suggestionsRequest(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleSuggestions_ConfiguredDefaultLimit(t *testing.T) {
	stub := &stubSuggestionService{}
	srv := NewServer(nil, nil, stub, nil, 5)

	rec := suggestionsRequest(t, srv, "/api/suggestions")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, stub.gotLimit, "the configured limit is the default")
}

func TestHandleSuggestions_QueryParamOverridesDefault(t *testing.T) {
	stub := &stubSuggestionService{}
	srv := NewServer(nil, nil, stub, nil, 5)

	rec := suggestionsRequest(t, srv, "/api/suggestions?limit=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, stub.gotLimit)
}

func TestHandleSuggestions_RejectsBadLimit(t *testing.T) {
	stub := &stubSuggestionService{}
	srv := NewServer(nil, nil, stub, nil, 5)

	rec := suggestionsRequest(t, srv, "/api/suggestions?limit=0")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, stub.gotLimit, "the service is not called for an invalid limit")
}

func TestNewServer_LimitFloor(t *testing.T) {
	stub := &stubSuggestionService{}
	srv := NewServer(nil, nil, stub, nil, 0)

	rec := suggestionsRequest(t, srv, "/api/suggestions")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, stub.gotLimit, "a missing configured limit falls back to 3")
}

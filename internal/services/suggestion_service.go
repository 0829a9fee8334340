package services

import (
	"context"
	"time"

	"github.com/studyflowhq/studyflow/internal/errors"
	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/repository"
	"github.com/studyflowhq/studyflow/internal/srs"
	"github.com/studyflowhq/studyflow/internal/suggest"
)

// DueOverview buckets a user's decks by review window. Computed fresh on
// every call, never cached.
type DueOverview struct {
	DueNow   []models.DueReview `json:"due_now"`
	Overdue  []models.DueReview `json:"overdue"`
	DueToday []models.DueReview `json:"due_today"`
}

// SuggestionService computes due-review overviews and ranked study
// suggestions, and converts accepted suggestions into tasks.
type SuggestionService interface {
	DueReviews(ctx context.Context, userID string) (*DueOverview, error)
	Suggestions(ctx context.Context, userID string, limit int) ([]models.SmartSuggestion, error)
	AcceptSuggestion(ctx context.Context, userID string, suggestion models.SmartSuggestion) (*models.Task, error)
}

type suggestionService struct {
	cards repository.CardRepository
	tasks repository.TaskRepository
	now   func() time.Time
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(cards repository.CardRepository, tasks repository.TaskRepository) SuggestionService {
	return &suggestionService{cards: cards, tasks: tasks, now: time.Now}
}

func (s *suggestionService) DueReviews(ctx context.Context, userID string) (*DueOverview, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing due overview: user_id=%s", userID)

	cards, err := s.cards.CardsForUser(ctx, userID)
	if err != nil {
		log.Error("failed to load cards: %v", err)
		return nil, errors.NewDataAccessError("load cards", err)
	}

	now := s.now()
	return &DueOverview{
		DueNow:   srs.DueNow(cards, now),
		Overdue:  srs.Overdue(cards, now),
		DueToday: srs.DueToday(cards, now),
	}, nil
}

func (s *suggestionService) Suggestions(ctx context.Context, userID string, limit int) ([]models.SmartSuggestion, error) {
	log := logger.FromContext(ctx)
	log.Debug("building suggestions: user_id=%s, limit=%d", userID, limit)

	cards, err := s.cards.CardsForUser(ctx, userID)
	if err != nil {
		log.Error("failed to load cards: %v", err)
		return nil, errors.NewDataAccessError("load cards", err)
	}

	now := s.now()
	in := suggest.Input{
		OverdueReviews:  srs.Overdue(cards, now),
		DueTodayReviews: srs.DueToday(cards, now),
	}

	in.OverdueTasks, err = s.tasks.PendingTasks(ctx, models.TaskFilter{
		UserID:    userID,
		Status:    models.TaskStatusPending,
		DueBefore: &now,
	})
	if err != nil {
		log.Error("failed to load overdue tasks: %v", err)
		return nil, errors.NewDataAccessError("load overdue tasks", err)
	}

	horizon := now.Add(24 * time.Hour)
	upcoming, err := s.tasks.PendingTasks(ctx, models.TaskFilter{
		UserID:     userID,
		Status:     models.TaskStatusPending,
		DueBefore:  &horizon,
		Priorities: []string{models.TaskPriorityHigh, models.TaskPriorityUrgent},
	})
	if err != nil {
		log.Error("failed to load upcoming tasks: %v", err)
		return nil, errors.NewDataAccessError("load upcoming tasks", err)
	}
	// The horizon query also matches already-overdue tasks; those belong
	// to the overdue source only.
	for _, t := range upcoming {
		if t.DueDate != nil && t.DueDate.After(now) {
			in.UpcomingTasks = append(in.UpcomingTasks, t)
		}
	}

	out := suggest.Rank(in, limit, now)
	log.Debug("built %d suggestions", len(out))
	return out, nil
}

func (s *suggestionService) AcceptSuggestion(ctx context.Context, userID string, suggestion models.SmartSuggestion) (*models.Task, error) {
	log := logger.FromContext(ctx)
	log.Debug("accepting suggestion: type=%s, title=%s", suggestion.Type, suggestion.Title)

	if suggestion.Title == "" {
		return nil, errors.NewValidationError("title", "cannot be empty")
	}

	draft := suggest.Draft(suggestion, s.now())
	id, err := s.tasks.Insert(ctx, userID, draft)
	if err != nil {
		log.Error("failed to create task from suggestion: %v", err)
		return nil, errors.NewDataAccessError("create task", err)
	}

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		log.Error("failed to load created task: %v", err)
		return nil, errors.NewDataAccessError("load task", err)
	}
	if task == nil {
		return nil, errors.NewNotFoundError("task", id)
	}
	log.Info("suggestion accepted, task created: id=%d", id)
	return task, nil
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/studyflowhq/studyflow/internal/models"
)

// MockTaskRepository is a mock implementation of repository.TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Get(ctx context.Context, id int64) (*models.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) PendingTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) Insert(ctx context.Context, userID string, draft models.TaskDraft) (int64, error) {
	args := m.Called(ctx, userID, draft)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/repository"
	"github.com/studyflowhq/studyflow/internal/testutil"
)

type TaskRepositorySuite struct {
	suite.Suite
	db    *sql.DB
	tasks repository.TaskRepository
	ctx   context.Context
	now   time.Time
}

func TestTaskRepositorySuite(t *testing.T) {
	suite.Run(t, new(TaskRepositorySuite))
}

func (s *TaskRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.tasks = NewTaskRepository(s.db)
	s.ctx = context.Background()
	s.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

func (s *TaskRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *TaskRepositorySuite) insertTask(title, priority string, due *time.Time) int64 {
	id, err := s.tasks.Insert(s.ctx, "user-1", models.TaskDraft{
		Title:            title,
		Priority:         priority,
		DueDate:          due,
		EstimatedMinutes: 30,
	})
	s.Require().NoError(err)
	return id
}

func (s *TaskRepositorySuite) TestInsertAndGet() {
	due := s.now.Add(2 * time.Hour)
	id := s.insertTask("Submit lab report", models.TaskPriorityHigh, &due)

	task, err := s.tasks.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(task)
	s.Equal("Submit lab report", task.Title)
	s.Equal(models.TaskStatusPending, task.Status, "new tasks start pending")
	s.Equal(models.TaskPriorityHigh, task.Priority)
	s.Require().NotNil(task.DueDate)
	s.True(task.DueDate.Equal(due))
}

func (s *TaskRepositorySuite) TestInsertDefaults() {
	id := s.insertTask("No frills", "", nil)

	task, err := s.tasks.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(models.TaskPriorityMedium, task.Priority, "priority defaults to medium")
	s.Nil(task.DueDate)
}

func (s *TaskRepositorySuite) TestGetMissingTask() {
	task, err := s.tasks.Get(s.ctx, 9999)
	s.NoError(err)
	s.Nil(task)
}

func (s *TaskRepositorySuite) TestPendingTasksDueBefore() {
	past := s.now.Add(-time.Hour)
	future := s.now.Add(48 * time.Hour)
	s.insertTask("Overdue", models.TaskPriorityMedium, &past)
	s.insertTask("Far future", models.TaskPriorityMedium, &future)
	s.insertTask("No due date", models.TaskPriorityMedium, nil)

	tasks, err := s.tasks.PendingTasks(s.ctx, models.TaskFilter{
		UserID:    "user-1",
		DueBefore: &s.now,
	})
	s.Require().NoError(err)
	s.Require().Len(tasks, 1, "undated and future tasks are excluded")
	s.Equal("Overdue", tasks[0].Title)
}

func (s *TaskRepositorySuite) TestPendingTasksPriorityFilter() {
	due := s.now.Add(time.Hour)
	s.insertTask("Low", models.TaskPriorityLow, &due)
	s.insertTask("High", models.TaskPriorityHigh, &due)
	s.insertTask("Urgent", models.TaskPriorityUrgent, &due)

	tasks, err := s.tasks.PendingTasks(s.ctx, models.TaskFilter{
		UserID:     "user-1",
		Priorities: []string{models.TaskPriorityHigh, models.TaskPriorityUrgent},
	})
	s.Require().NoError(err)
	s.Len(tasks, 2)
	for _, task := range tasks {
		s.Contains([]string{models.TaskPriorityHigh, models.TaskPriorityUrgent}, task.Priority)
	}
}

func (s *TaskRepositorySuite) TestPendingTasksExcludesCompleted() {
	due := s.now.Add(-time.Hour)
	done := s.insertTask("Done", models.TaskPriorityMedium, &due)
	s.insertTask("Still open", models.TaskPriorityMedium, &due)

	s.Require().NoError(s.tasks.UpdateStatus(s.ctx, done, models.TaskStatusCompleted))

	tasks, err := s.tasks.PendingTasks(s.ctx, models.TaskFilter{UserID: "user-1"})
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal("Still open", tasks[0].Title)
}

func (s *TaskRepositorySuite) TestPendingTasksScopedToUser() {
	due := s.now.Add(time.Hour)
	s.insertTask("Mine", models.TaskPriorityMedium, &due)
	_, err := s.tasks.Insert(s.ctx, "user-2", models.TaskDraft{Title: "Theirs", DueDate: &due})
	s.Require().NoError(err)

	tasks, err := s.tasks.PendingTasks(s.ctx, models.TaskFilter{UserID: "user-1"})
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal("Mine", tasks[0].Title)
}

func (s *TaskRepositorySuite) TestPendingTasksOrderAndLimit() {
	later := s.now.Add(3 * time.Hour)
	sooner := s.now.Add(time.Hour)
	s.insertTask("Later", models.TaskPriorityMedium, &later)
	s.insertTask("Sooner", models.TaskPriorityMedium, &sooner)

	tasks, err := s.tasks.PendingTasks(s.ctx, models.TaskFilter{UserID: "user-1", Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(tasks, 1)
	s.Equal("Sooner", tasks[0].Title, "tasks come back in due-date order")
}

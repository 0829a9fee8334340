package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/studyflowhq/studyflow/internal/logger"
	"github.com/studyflowhq/studyflow/internal/models"
	"github.com/studyflowhq/studyflow/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository implementation
func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Get(ctx context.Context, id int64) (*models.Task, error) {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("getting task: id=%d", id)

	var t models.Task
	var due sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, title, description, status, priority, due_date, estimated_minutes, created_at
FROM tasks
WHERE id = ?
`, id).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &due, &t.EstimatedMinutes, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("task not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get task: %v", err)
		return nil, err
	}
	if due.Valid {
		t.DueDate = &due.Time
	}
	return &t, nil
}

func (r *taskRepository) PendingTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("listing tasks with filter: user_id=%s, status=%s", filter.UserID, filter.Status)

	query := sqlBuilder.Select(
		"id", "user_id", "title", "description", "status", "priority",
		"due_date", "estimated_minutes", "created_at",
	).From("tasks")

	// Dynamic WHERE clauses
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	status := filter.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	query = query.Where(squirrel.Eq{"status": status})
	if filter.DueBefore != nil {
		query = query.Where(squirrel.And{
			squirrel.NotEq{"due_date": nil},
			squirrel.LtOrEq{"due_date": *filter.DueBefore},
		})
	}
	if len(filter.Priorities) > 0 {
		query = query.Where(squirrel.Eq{"priority": filter.Priorities})
	}

	query = query.OrderBy("due_date ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build task query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query tasks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var due sql.NullTime
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &due, &t.EstimatedMinutes, &t.CreatedAt); err != nil {
			log.Error("failed to scan task row: %v", err)
			return nil, err
		}
		if due.Valid {
			t.DueDate = &due.Time
		}
		tasks = append(tasks, t)
	}
	log.Debug("found %d tasks", len(tasks))
	return tasks, rows.Err()
}

func (r *taskRepository) Insert(ctx context.Context, userID string, draft models.TaskDraft) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("inserting task: user_id=%s, title=%s", userID, draft.Title)

	priority := draft.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	var due interface{}
	if draft.DueDate != nil {
		due = *draft.DueDate
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO tasks (user_id, title, description, status, priority, due_date, estimated_minutes)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, userID, draft.Title, draft.Description, models.TaskStatusPending, priority, due, draft.EstimatedMinutes)
	if err != nil {
		log.Error("failed to insert task: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get task id: %v", err)
		return 0, err
	}
	log.Debug("task inserted: id=%d", id)
	return id, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	log := logger.FromContext(ctx).WithPrefix("task_repo")
	log.Debug("updating task status: id=%d, status=%s", id, status)

	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		log.Error("failed to update task status: %v", err)
	}
	return err
}

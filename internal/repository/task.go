package repository

import (
	"context"
	"time"

	"github.com/mohammedsoliman1619/fpp815/internal/database"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

type TaskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO task (user_id, project_id, title, description, priority, status, due_date, estimated_minutes, tags, subtasks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING task_id, created_at`,
		task.UserID, task.ProjectID, task.Title, task.Description, task.Priority,
		task.Status, task.DueDate, task.EstimatedMinutes, task.Tags, task.Subtasks,
	).Scan(&task.TaskID, &task.CreatedAt)
}

func (r *TaskRepository) GetByUserID(ctx context.Context, userID int64, includeCompleted bool) ([]*models.Task, error) {
	query := `SELECT task_id, user_id, project_id, title, description, priority, status, due_date,
		 estimated_minutes, tags, is_auto_rolled, subtasks, created_at
		 FROM task WHERE user_id = $1`
	if !includeCompleted {
		query += ` AND status != 'completed'`
	}
	query += ` ORDER BY priority DESC, due_date ASC NULLS LAST, created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTasks(rows)
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID int, userID int64) (*models.Task, error) {
	task := &models.Task{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT task_id, user_id, project_id, title, description, priority, status, due_date,
		 estimated_minutes, tags, is_auto_rolled, subtasks, created_at
		 FROM task WHERE task_id = $1 AND user_id = $2`,
		taskID, userID,
	).Scan(&task.TaskID, &task.UserID, &task.ProjectID, &task.Title, &task.Description,
		&task.Priority, &task.Status, &task.DueDate, &task.EstimatedMinutes,
		&task.Tags, &task.IsAutoRolled, &task.Subtasks, &task.CreatedAt)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE task SET project_id = $1, title = $2, description = $3, priority = $4, status = $5,
		 due_date = $6, estimated_minutes = $7, tags = $8, is_auto_rolled = $9, subtasks = $10
		 WHERE task_id = $11 AND user_id = $12`,
		task.ProjectID, task.Title, task.Description, task.Priority, task.Status,
		task.DueDate, task.EstimatedMinutes, task.Tags, task.IsAutoRolled, task.Subtasks,
		task.TaskID, task.UserID,
	)
	return err
}

func (r *TaskRepository) SetStatus(ctx context.Context, taskID int, userID int64, status models.TaskStatus) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE task SET status = $1 WHERE task_id = $2 AND user_id = $3`,
		status, taskID, userID,
	)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, taskID int, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM task WHERE task_id = $1 AND user_id = $2`,
		taskID, userID,
	)
	return err
}

// GetOverdue returns incomplete tasks whose due date fell before the given cutoff.
func (r *TaskRepository) GetOverdue(ctx context.Context, userID int64, before time.Time) ([]*models.Task, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT task_id, user_id, project_id, title, description, priority, status, due_date,
		 estimated_minutes, tags, is_auto_rolled, subtasks, created_at
		 FROM task WHERE user_id = $1 AND status != 'completed' AND due_date IS NOT NULL AND due_date < $2
		 ORDER BY due_date ASC`,
		userID, before,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanTasks(rows)
}

func (r *TaskRepository) GetAllUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT DISTINCT user_id FROM task`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *TaskRepository) scanTasks(rows interface {
	Next() bool
	Scan(dest ...any) error
}) ([]*models.Task, error) {
	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.TaskID, &task.UserID, &task.ProjectID, &task.Title,
			&task.Description, &task.Priority, &task.Status, &task.DueDate,
			&task.EstimatedMinutes, &task.Tags, &task.IsAutoRolled, &task.Subtasks,
			&task.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

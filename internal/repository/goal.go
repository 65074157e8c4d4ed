package repository

import (
	"context"

	"github.com/mohammedsoliman1619/fpp815/internal/database"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

type GoalRepository struct {
	db *database.DB
}

func NewGoalRepository(db *database.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO goal (user_id, title, description, target_date, progress, status, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING goal_id, created_at`,
		goal.UserID, goal.Title, goal.Description, goal.TargetDate, goal.Progress, goal.Status, goal.Tags,
	).Scan(&goal.GoalID, &goal.CreatedAt)
}

func (r *GoalRepository) GetByUserID(ctx context.Context, userID int64, includeFinished bool) ([]*models.Goal, error) {
	query := `SELECT goal_id, user_id, title, description, target_date, progress, status, tags, created_at
		 FROM goal WHERE user_id = $1`
	if !includeFinished {
		query += ` AND status = 'active'`
	}
	query += ` ORDER BY target_date ASC NULLS LAST, created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		goal := &models.Goal{}
		if err := rows.Scan(&goal.GoalID, &goal.UserID, &goal.Title, &goal.Description,
			&goal.TargetDate, &goal.Progress, &goal.Status, &goal.Tags, &goal.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, goalID int, userID int64) (*models.Goal, error) {
	goal := &models.Goal{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT goal_id, user_id, title, description, target_date, progress, status, tags, created_at
		 FROM goal WHERE goal_id = $1 AND user_id = $2`,
		goalID, userID,
	).Scan(&goal.GoalID, &goal.UserID, &goal.Title, &goal.Description,
		&goal.TargetDate, &goal.Progress, &goal.Status, &goal.Tags, &goal.CreatedAt)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *GoalRepository) Update(ctx context.Context, goal *models.Goal) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE goal SET title = $1, description = $2, target_date = $3, progress = $4, status = $5, tags = $6
		 WHERE goal_id = $7 AND user_id = $8`,
		goal.Title, goal.Description, goal.TargetDate, goal.Progress, goal.Status, goal.Tags,
		goal.GoalID, goal.UserID,
	)
	return err
}

func (r *GoalRepository) SetProgress(ctx context.Context, goalID int, userID int64, progress int) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE goal SET progress = LEAST(100, GREATEST(0, $1)),
		 status = CASE WHEN $1 >= 100 THEN 'achieved' ELSE status END
		 WHERE goal_id = $2 AND user_id = $3`,
		progress, goalID, userID,
	)
	return err
}

func (r *GoalRepository) Delete(ctx context.Context, goalID int, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM goal WHERE goal_id = $1 AND user_id = $2`,
		goalID, userID,
	)
	return err
}

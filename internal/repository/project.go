package repository

import (
	"context"

	"github.com/mohammedsoliman1619/fpp815/internal/database"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

type ProjectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO project (user_id, name, color) VALUES ($1, $2, $3)
		 RETURNING project_id, created_at`,
		project.UserID, project.Name, project.Color,
	).Scan(&project.ProjectID, &project.CreatedAt)
}

func (r *ProjectRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Project, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT project_id, user_id, name, color, created_at
		 FROM project WHERE user_id = $1 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		if err := rows.Scan(&project.ProjectID, &project.UserID, &project.Name,
			&project.Color, &project.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (r *ProjectRepository) GetOrCreate(ctx context.Context, userID int64, name string) (*models.Project, error) {
	project := &models.Project{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT project_id, user_id, name, color, created_at
		 FROM project WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&project.ProjectID, &project.UserID, &project.Name, &project.Color, &project.CreatedAt)
	if err == nil {
		return project, nil
	}

	project = &models.Project{UserID: userID, Name: name}
	if err := r.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID int, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM project WHERE project_id = $1 AND user_id = $2`,
		projectID, userID,
	)
	return err
}

package repository

import (
	"context"
	"time"

	"github.com/mohammedsoliman1619/fpp815/internal/database"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

type TimeBlockRepository struct {
	db *database.DB
}

func NewTimeBlockRepository(db *database.DB) *TimeBlockRepository {
	return &TimeBlockRepository{db: db}
}

func (r *TimeBlockRepository) Create(ctx context.Context, block *models.TimeBlock) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO time_block (user_id, title, start_time, end_time, duration_minutes, color)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING block_id, created_at`,
		block.UserID, block.Title, block.StartTime, block.EndTime, block.DurationMinutes, block.Color,
	).Scan(&block.BlockID, &block.CreatedAt)
}

func (r *TimeBlockRepository) GetByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]*models.TimeBlock, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT block_id, user_id, title, start_time, end_time, duration_minutes, color, created_at
		 FROM time_block WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
		 ORDER BY start_time ASC`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*models.TimeBlock
	for rows.Next() {
		block := &models.TimeBlock{}
		if err := rows.Scan(&block.BlockID, &block.UserID, &block.Title, &block.StartTime,
			&block.EndTime, &block.DurationMinutes, &block.Color, &block.CreatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func (r *TimeBlockRepository) GetByID(ctx context.Context, blockID int, userID int64) (*models.TimeBlock, error) {
	block := &models.TimeBlock{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT block_id, user_id, title, start_time, end_time, duration_minutes, color, created_at
		 FROM time_block WHERE block_id = $1 AND user_id = $2`,
		blockID, userID,
	).Scan(&block.BlockID, &block.UserID, &block.Title, &block.StartTime,
		&block.EndTime, &block.DurationMinutes, &block.Color, &block.CreatedAt)
	if err != nil {
		return nil, err
	}
	return block, nil
}

func (r *TimeBlockRepository) Update(ctx context.Context, block *models.TimeBlock) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE time_block SET title = $1, start_time = $2, end_time = $3, duration_minutes = $4, color = $5
		 WHERE block_id = $6 AND user_id = $7`,
		block.Title, block.StartTime, block.EndTime, block.DurationMinutes, block.Color,
		block.BlockID, block.UserID,
	)
	return err
}

func (r *TimeBlockRepository) Delete(ctx context.Context, blockID int, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM time_block WHERE block_id = $1 AND user_id = $2`,
		blockID, userID,
	)
	return err
}

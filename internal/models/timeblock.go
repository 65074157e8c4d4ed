package models

import "time"

// TimeBlock is a manually planned stretch of focused time. DurationMinutes is
// stored rather than recomputed so manual overrides survive edits to the
// start/end pair.
type TimeBlock struct {
	BlockID         int       `json:"block_id"`
	UserID          int64     `json:"user_id"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Color           string    `json:"color"`
	CreatedAt       time.Time `json:"created_at"`
}

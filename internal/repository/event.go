package repository

import (
	"context"
	"time"

	"github.com/mohammedsoliman1619/fpp815/internal/database"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO event (user_id, title, description, start_time, end_time, recurrence, color, notification_minutes, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING event_id, created_at`,
		event.UserID, event.Title, event.Description, event.StartTime, event.EndTime,
		event.Recurrence, event.Color, event.NotificationMinutes, event.Tags,
	).Scan(&event.EventID, &event.CreatedAt)
}

func (r *EventRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.CalendarEvent, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT event_id, user_id, title, description, start_time, end_time, recurrence, color,
		 notification_minutes, notified_at, tags, created_at
		 FROM event WHERE user_id = $1
		 ORDER BY start_time ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

func (r *EventRepository) GetByID(ctx context.Context, eventID int, userID int64) (*models.CalendarEvent, error) {
	event := &models.CalendarEvent{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT event_id, user_id, title, description, start_time, end_time, recurrence, color,
		 notification_minutes, notified_at, tags, created_at
		 FROM event WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&event.EventID, &event.UserID, &event.Title, &event.Description, &event.StartTime,
		&event.EndTime, &event.Recurrence, &event.Color, &event.NotificationMinutes,
		&event.NotifiedAt, &event.Tags, &event.CreatedAt)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// GetCandidatesForWindow returns events that could produce occurrences inside
// [start, end]: anything recurring that began before the window's end, plus
// one-off events starting inside it. Window expansion itself happens in
// internal/recurrence.
func (r *EventRepository) GetCandidatesForWindow(ctx context.Context, userID int64, start, end time.Time) ([]*models.CalendarEvent, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT event_id, user_id, title, description, start_time, end_time, recurrence, color,
		 notification_minutes, notified_at, tags, created_at
		 FROM event WHERE user_id = $1 AND start_time <= $3
		 AND (recurrence IS NOT NULL OR start_time >= $2)
		 ORDER BY start_time ASC`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

func (r *EventRepository) Update(ctx context.Context, event *models.CalendarEvent) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE event SET title = $1, description = $2, start_time = $3, end_time = $4,
		 recurrence = $5, color = $6, notification_minutes = $7, tags = $8
		 WHERE event_id = $9 AND user_id = $10`,
		event.Title, event.Description, event.StartTime, event.EndTime, event.Recurrence,
		event.Color, event.NotificationMinutes, event.Tags, event.EventID, event.UserID,
	)
	return err
}

func (r *EventRepository) Delete(ctx context.Context, eventID int, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM event WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	return err
}

// GetPendingNotifications returns one-off events inside their notification
// lead window that have not been notified yet.
func (r *EventRepository) GetPendingNotifications(ctx context.Context) ([]*models.CalendarEvent, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT event_id, user_id, title, description, start_time, end_time, recurrence, color,
		 notification_minutes, notified_at, tags, created_at
		 FROM event
		 WHERE notification_minutes > 0
		 AND notified_at IS NULL
		 AND start_time - (notification_minutes || ' minutes')::interval <= NOW()
		 AND start_time > NOW()
		 ORDER BY start_time ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

func (r *EventRepository) SetNotifiedAt(ctx context.Context, eventID int, at *time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE event SET notified_at = $1 WHERE event_id = $2`,
		at, eventID,
	)
	return err
}

func (r *EventRepository) scanEvents(rows interface {
	Next() bool
	Scan(dest ...any) error
}) ([]*models.CalendarEvent, error) {
	var events []*models.CalendarEvent
	for rows.Next() {
		event := &models.CalendarEvent{}
		if err := rows.Scan(&event.EventID, &event.UserID, &event.Title, &event.Description,
			&event.StartTime, &event.EndTime, &event.Recurrence, &event.Color,
			&event.NotificationMinutes, &event.NotifiedAt, &event.Tags, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

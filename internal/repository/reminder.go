package repository

import (
	"context"
	"time"

	"github.com/mohammedsoliman1619/fpp815/internal/database"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminder (user_id, message, description, remind_at, recurrence, enabled, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING reminder_id, created_at`,
		reminder.UserID, reminder.Message, reminder.Description, reminder.RemindAt,
		reminder.Recurrence, reminder.Enabled, reminder.Tags,
	).Scan(&reminder.ReminderID, &reminder.CreatedAt)
}

func (r *ReminderRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT reminder_id, user_id, message, description, remind_at, recurrence, enabled, notified_at, tags, created_at
		 FROM reminder WHERE user_id = $1 ORDER BY remind_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanReminders(rows)
}

func (r *ReminderRepository) GetByID(ctx context.Context, reminderID int, userID int64) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT reminder_id, user_id, message, description, remind_at, recurrence, enabled, notified_at, tags, created_at
		 FROM reminder WHERE reminder_id = $1 AND user_id = $2`,
		reminderID, userID,
	).Scan(&reminder.ReminderID, &reminder.UserID, &reminder.Message, &reminder.Description,
		&reminder.RemindAt, &reminder.Recurrence, &reminder.Enabled, &reminder.NotifiedAt,
		&reminder.Tags, &reminder.CreatedAt)
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

// GetDue returns enabled reminders whose remind_at has passed and which have
// not been notified for the current occurrence.
func (r *ReminderRepository) GetDue(ctx context.Context, now time.Time) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT reminder_id, user_id, message, description, remind_at, recurrence, enabled, notified_at, tags, created_at
		 FROM reminder
		 WHERE enabled = TRUE AND remind_at <= $1
		 AND (notified_at IS NULL OR notified_at < remind_at)
		 ORDER BY remind_at ASC`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanReminders(rows)
}

func (r *ReminderRepository) Reschedule(ctx context.Context, reminderID int, next time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminder SET remind_at = $1, notified_at = NULL WHERE reminder_id = $2`,
		next, reminderID,
	)
	return err
}

func (r *ReminderRepository) SetNotifiedAt(ctx context.Context, reminderID int, at *time.Time) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminder SET notified_at = $1 WHERE reminder_id = $2`,
		at, reminderID,
	)
	return err
}

func (r *ReminderRepository) SetEnabled(ctx context.Context, reminderID int, userID int64, enabled bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminder SET enabled = $1 WHERE reminder_id = $2 AND user_id = $3`,
		enabled, reminderID, userID,
	)
	return err
}

func (r *ReminderRepository) Delete(ctx context.Context, reminderID int, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM reminder WHERE reminder_id = $1 AND user_id = $2`,
		reminderID, userID,
	)
	return err
}

func (r *ReminderRepository) scanReminders(rows interface {
	Next() bool
	Scan(dest ...any) error
}) ([]*models.Reminder, error) {
	var reminders []*models.Reminder
	for rows.Next() {
		reminder := &models.Reminder{}
		if err := rows.Scan(&reminder.ReminderID, &reminder.UserID, &reminder.Message,
			&reminder.Description, &reminder.RemindAt, &reminder.Recurrence, &reminder.Enabled,
			&reminder.NotifiedAt, &reminder.Tags, &reminder.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}

package models

import "time"

type Reminder struct {
	ReminderID  int             `json:"reminder_id"`
	UserID      int64           `json:"user_id"`
	Message     string          `json:"message"`
	Description string          `json:"description"`
	RemindAt    time.Time       `json:"remind_at"` // next scheduled delivery
	Recurrence  *RecurrenceRule `json:"recurrence"`
	Enabled     bool            `json:"enabled"`
	NotifiedAt  *time.Time      `json:"notified_at"`
	Tags        string          `json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IsRecurring returns true if this reminder reschedules itself after firing.
func (r *Reminder) IsRecurring() bool {
	return r.Recurrence.IsRecurring()
}

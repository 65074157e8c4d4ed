package models

import (
	"fmt"
	"time"
)

type CalendarEvent struct {
	EventID             int             `json:"event_id"`
	UserID              int64           `json:"user_id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	StartTime           time.Time       `json:"start_time"`
	EndTime             *time.Time      `json:"end_time"`
	Recurrence          *RecurrenceRule `json:"recurrence"`
	Color               string          `json:"color"`
	Tags                string          `json:"tags"`
	NotificationMinutes int             `json:"notification_minutes"` // minutes before start to notify
	NotifiedAt          *time.Time      `json:"notified_at"`
	InstanceID          string          `json:"instance_id,omitempty"` // set on expanded occurrences only
	CreatedAt           time.Time       `json:"created_at"`
}

// IsRecurring returns true if this event carries a repeating rule.
func (e *CalendarEvent) IsRecurring() bool {
	return e.Recurrence.IsRecurring()
}

// Duration returns the event length, or zero when it has no end time.
func (e *CalendarEvent) Duration() time.Duration {
	if e.EndTime == nil {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}

// Clone returns a deep copy safe to reschedule without touching the original.
func (e *CalendarEvent) Clone() *CalendarEvent {
	c := *e
	if e.EndTime != nil {
		t := *e.EndTime
		c.EndTime = &t
	}
	if e.NotifiedAt != nil {
		t := *e.NotifiedAt
		c.NotifiedAt = &t
	}
	if e.Recurrence != nil {
		r := *e.Recurrence
		r.DaysOfWeek = append([]int(nil), e.Recurrence.DaysOfWeek...)
		r.Exceptions = append([]time.Time(nil), e.Recurrence.Exceptions...)
		if e.Recurrence.EndDate != nil {
			d := *e.Recurrence.EndDate
			r.EndDate = &d
		}
		c.Recurrence = &r
	}
	return &c
}

// SourceID is the identifier a timeline item should carry for this event:
// the derived instance id for an expanded occurrence, the row id otherwise.
func (e *CalendarEvent) SourceID() string {
	if e.InstanceID != "" {
		return e.InstanceID
	}
	return fmt.Sprintf("%d", e.EventID)
}

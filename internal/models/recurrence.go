package models

import "time"

type RecurrenceKind string

const (
	RecurrenceNone    RecurrenceKind = "none"
	RecurrenceDaily   RecurrenceKind = "daily"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
	RecurrenceYearly  RecurrenceKind = "yearly"
	RecurrenceCustom  RecurrenceKind = "custom"
)

// RecurrenceRule describes how a calendar event repeats.
// Stored as jsonb on the event row.
type RecurrenceRule struct {
	Kind        RecurrenceKind `json:"kind"`
	Interval    int            `json:"interval"`                // every N units
	DaysOfWeek  []int          `json:"days_of_week,omitempty"`  // 0 = Sunday
	DayOfMonth  int            `json:"day_of_month,omitempty"`  // 1-31, 0 = unset
	MonthOfYear int            `json:"month_of_year,omitempty"` // 1-12, 0 = unset
	EndDate     *time.Time     `json:"end_date,omitempty"`      // no occurrence starts on or after this
	Exceptions  []time.Time    `json:"exceptions,omitempty"`    // occurrence dates to skip
}

func (r *RecurrenceRule) IsRecurring() bool {
	if r == nil {
		return false
	}
	switch r.Kind {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Step returns the interval coerced to at least 1, so that a degenerate
// interval can never stall the expansion cursor.
func (r *RecurrenceRule) Step() int {
	if r == nil || r.Interval < 1 {
		return 1
	}
	return r.Interval
}

// ExceptsDate reports whether the given calendar day is in the exception set.
func (r *RecurrenceRule) ExceptsDate(t time.Time) bool {
	if r == nil {
		return false
	}
	for _, ex := range r.Exceptions {
		if ex.Year() == t.Year() && ex.Month() == t.Month() && ex.Day() == t.Day() {
			return true
		}
	}
	return false
}

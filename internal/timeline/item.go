// Package timeline reconciles heterogeneous productivity entities into one
// normalized, render-ready model and answers workload and conflict queries
// over it. Everything here is a pure function over in-memory snapshots.
package timeline

import "time"

type Category string

const (
	CategoryTask      Category = "task"
	CategoryEvent     Category = "event"
	CategoryGoal      Category = "goal"
	CategoryReminder  Category = "reminder"
	CategoryTimeBlock Category = "timeblock"
)

// Default durations in minutes when the source carries none.
const (
	defaultTaskMinutes     = 30
	defaultEventMinutes    = 60
	defaultGoalMinutes     = 30
	defaultReminderMinutes = 15
	fallbackMinutes        = 30
)

// Item is the ephemeral, unified representation of any schedulable entity.
// Items are rebuilt from the current snapshot on every pass and are never
// persisted; identity is only meaningful within a single Build call.
type Item struct {
	ID              string
	Title           string
	Description     string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
	Category        Category
	Color           string
	Project         string
	Priority        int
	Status          string
	Tags            string
	IsAutoRolled    bool
	Source          any // back-reference to the source entity, for mutation by the caller
}

package timeline

import (
	"time"

	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

// RolloverStale rewrites the due date of every incomplete task whose due day
// is strictly before now's calendar day to now's midnight, flagging it as
// auto-rolled. All other tasks pass through untouched. The input slice and
// its tasks are never mutated; rolled tasks are returned as clones.
func RolloverStale(tasks []*models.Task, now time.Time) []*models.Task {
	today := midnight(now)
	out := make([]*models.Task, len(tasks))

	for i, t := range tasks {
		if t.IsCompleted() || t.DueDate == nil || !midnight(*t.DueDate).Before(today) {
			out[i] = t
			continue
		}
		rolled := t.Clone()
		due := today
		rolled.DueDate = &due
		rolled.IsAutoRolled = true
		out[i] = rolled
	}
	return out
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Package recurrence turns events carrying a recurrence rule into the
// concrete dated occurrences that fall inside a calendar viewing window.
package recurrence

import (
	"fmt"
	"time"

	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

// Expand produces every occurrence of the given events inside the closed
// window [windowStart, windowEnd]. Non-recurring events (including events
// whose rule kind is unknown) pass through unchanged when their start time
// lies inside the window. Recurring events are cloned per occurrence with the
// original duration preserved and a derived instance id of the form
// "<eventID>-<yyyyMMdd>". The inputs are never mutated.
func Expand(events []*models.CalendarEvent, windowStart, windowEnd time.Time) []*models.CalendarEvent {
	out := make([]*models.CalendarEvent, 0, len(events))
	if windowEnd.Before(windowStart) {
		return out
	}

	for _, ev := range events {
		rule := ev.Recurrence
		if rule == nil || !rule.IsRecurring() {
			if inWindow(ev.StartTime, windowStart, windowEnd) {
				out = append(out, ev)
			}
			continue
		}

		switch rule.Kind {
		case models.RecurrenceDaily:
			out = append(out, expandDaily(ev, rule, windowStart, windowEnd)...)
		case models.RecurrenceWeekly:
			out = append(out, expandWeekly(ev, rule, windowStart, windowEnd)...)
		case models.RecurrenceMonthly:
			out = append(out, expandMonthly(ev, rule, windowStart, windowEnd)...)
		case models.RecurrenceYearly:
			out = append(out, expandYearly(ev, rule, windowStart, windowEnd)...)
		}
	}
	return out
}

func expandDaily(ev *models.CalendarEvent, rule *models.RecurrenceRule, windowStart, windowEnd time.Time) []*models.CalendarEvent {
	var out []*models.CalendarEvent
	step := rule.Step()

	for cursor := ev.StartTime; !cursor.After(windowEnd); cursor = cursor.AddDate(0, 0, step) {
		if ended(rule, cursor) {
			break
		}
		if cursor.Before(windowStart) || rule.ExceptsDate(cursor) {
			continue
		}
		out = append(out, occurrence(ev, cursor))
	}
	return out
}

// expandWeekly anchors to the start of the event's week, emits every matching
// weekday offset inside a matched week, then jumps whole weeks by the
// interval. Walking week by week instead of day by day keeps multi-week
// intervals from missing or duplicating occurrences at week boundaries.
func expandWeekly(ev *models.CalendarEvent, rule *models.RecurrenceRule, windowStart, windowEnd time.Time) []*models.CalendarEvent {
	var out []*models.CalendarEvent

	offsets := rule.DaysOfWeek
	if len(offsets) == 0 {
		// An empty day set matches the anchor's own weekday.
		offsets = []int{int(ev.StartTime.Weekday())}
	}

	weekStart := startOfWeek(ev.StartTime)
	stepDays := 7 * rule.Step()

	for ; !weekStart.After(windowEnd); weekStart = weekStart.AddDate(0, 0, stepDays) {
		for _, off := range offsets {
			if off < 0 || off > 6 {
				continue
			}
			cursor := atClock(weekStart.AddDate(0, 0, off), ev.StartTime)
			if cursor.Before(ev.StartTime) || ended(rule, cursor) {
				continue
			}
			if !inWindow(cursor, windowStart, windowEnd) || rule.ExceptsDate(cursor) {
				continue
			}
			out = append(out, occurrence(ev, cursor))
		}
	}
	return out
}

func expandMonthly(ev *models.CalendarEvent, rule *models.RecurrenceRule, windowStart, windowEnd time.Time) []*models.CalendarEvent {
	var out []*models.CalendarEvent

	day := rule.DayOfMonth
	if day == 0 {
		day = ev.StartTime.Day()
	}
	step := rule.Step()

	year, month := ev.StartTime.Year(), ev.StartTime.Month()
	for {
		monthStart := time.Date(year, month, 1, 0, 0, 0, 0, ev.StartTime.Location())
		if monthStart.After(windowEnd) {
			break
		}
		cursor := atClock(time.Date(year, month, day, 0, 0, 0, 0, ev.StartTime.Location()), ev.StartTime)
		// A month without the requested day (e.g. the 31st in February) is
		// skipped, never clamped to its last day.
		valid := cursor.Day() == day
		if valid && !cursor.Before(ev.StartTime) && !ended(rule, cursor) &&
			inWindow(cursor, windowStart, windowEnd) && !rule.ExceptsDate(cursor) {
			out = append(out, occurrence(ev, cursor))
		}
		month += time.Month(step)
		for month > 12 {
			month -= 12
			year++
		}
	}
	return out
}

func expandYearly(ev *models.CalendarEvent, rule *models.RecurrenceRule, windowStart, windowEnd time.Time) []*models.CalendarEvent {
	var out []*models.CalendarEvent

	month := time.Month(rule.MonthOfYear)
	if month == 0 {
		month = ev.StartTime.Month()
	}
	day := rule.DayOfMonth
	if day == 0 {
		day = ev.StartTime.Day()
	}
	step := rule.Step()

	for year := ev.StartTime.Year(); ; year += step {
		yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, ev.StartTime.Location())
		if yearStart.After(windowEnd) {
			break
		}
		cursor := atClock(time.Date(year, month, day, 0, 0, 0, 0, ev.StartTime.Location()), ev.StartTime)
		// Only a real <month, day> match counts; Feb 29 outside leap years
		// normalizes away and is skipped.
		if cursor.Month() != month || cursor.Day() != day {
			continue
		}
		if cursor.Before(ev.StartTime) || ended(rule, cursor) {
			continue
		}
		if inWindow(cursor, windowStart, windowEnd) && !rule.ExceptsDate(cursor) {
			out = append(out, occurrence(ev, cursor))
		}
	}
	return out
}

// occurrence clones the base event onto a new start time, preserving the
// original duration and deriving the per-instance id.
func occurrence(ev *models.CalendarEvent, start time.Time) *models.CalendarEvent {
	c := ev.Clone()
	c.StartTime = start
	if ev.EndTime != nil {
		end := start.Add(ev.EndTime.Sub(ev.StartTime))
		c.EndTime = &end
	}
	c.InstanceID = fmt.Sprintf("%d-%s", ev.EventID, start.Format("20060102"))
	return c
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ended reports whether the rule's end date forbids an occurrence at t.
// The end date is exclusive: nothing starts on or after it.
func ended(rule *models.RecurrenceRule, t time.Time) bool {
	return rule.EndDate != nil && !t.Before(*rule.EndDate)
}

// startOfWeek returns midnight of the Sunday on or before t.
func startOfWeek(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// atClock combines the calendar day of d with the clock time of anchor.
func atClock(d, anchor time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(),
		anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(), anchor.Location())
}

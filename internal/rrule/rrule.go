// Package rrule bridges the structured recurrence rules stored on entities to
// RFC 5545 rules, for the scheduler's next-occurrence math. Calendar-window
// expansion does not go through here; see internal/recurrence.
package rrule

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

var weekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// ToRRule converts a structured rule anchored at dtstart into an RRule.
// Returns an error for rules with no recurring kind.
func ToRRule(rule *models.RecurrenceRule, dtstart time.Time) (*rrule.RRule, error) {
	if !rule.IsRecurring() {
		return nil, fmt.Errorf("rule kind %q is not recurring", kindString(rule))
	}

	opt := rrule.ROption{
		Interval: rule.Step(),
		Dtstart:  dtstart,
	}

	switch rule.Kind {
	case models.RecurrenceDaily:
		opt.Freq = rrule.DAILY
	case models.RecurrenceWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range rule.DaysOfWeek {
			if d >= 0 && d <= 6 {
				opt.Byweekday = append(opt.Byweekday, weekdays[d])
			}
		}
	case models.RecurrenceMonthly:
		opt.Freq = rrule.MONTHLY
		if rule.DayOfMonth > 0 {
			opt.Bymonthday = []int{rule.DayOfMonth}
		}
	case models.RecurrenceYearly:
		opt.Freq = rrule.YEARLY
		if rule.MonthOfYear > 0 {
			opt.Bymonth = []int{rule.MonthOfYear}
		}
		if rule.DayOfMonth > 0 {
			opt.Bymonthday = []int{rule.DayOfMonth}
		}
	}

	if rule.EndDate != nil {
		// The rule's end date is exclusive; UNTIL is inclusive.
		opt.Until = rule.EndDate.Add(-time.Second)
	}

	return rrule.NewRRule(opt)
}

// Next returns the first occurrence strictly after the given time, or nil
// when the rule has run out.
func Next(rule *models.RecurrenceRule, dtstart, after time.Time) (*time.Time, error) {
	r, err := ToRRule(rule, dtstart)
	if err != nil {
		return nil, err
	}
	next := r.After(after, false)
	if next.IsZero() {
		return nil, nil
	}
	return &next, nil
}

// Describe renders a short human-readable description of a rule.
func Describe(rule *models.RecurrenceRule) string {
	if !rule.IsRecurring() {
		return "one-time"
	}

	var b strings.Builder
	step := rule.Step()
	unit := map[models.RecurrenceKind]string{
		models.RecurrenceDaily:   "day",
		models.RecurrenceWeekly:  "week",
		models.RecurrenceMonthly: "month",
		models.RecurrenceYearly:  "year",
	}[rule.Kind]
	if step == 1 {
		b.WriteString("every " + unit)
	} else {
		fmt.Fprintf(&b, "every %d %ss", step, unit)
	}

	if rule.Kind == models.RecurrenceWeekly && len(rule.DaysOfWeek) > 0 {
		names := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		var days []string
		for _, d := range rule.DaysOfWeek {
			if d >= 0 && d <= 6 {
				days = append(days, names[d])
			}
		}
		if len(days) > 0 {
			b.WriteString(" on " + strings.Join(days, ", "))
		}
	}
	if rule.Kind == models.RecurrenceMonthly && rule.DayOfMonth > 0 {
		fmt.Fprintf(&b, " on day %d", rule.DayOfMonth)
	}
	if rule.Kind == models.RecurrenceYearly && rule.MonthOfYear > 0 {
		fmt.Fprintf(&b, " in %s", time.Month(rule.MonthOfYear))
	}
	if rule.EndDate != nil {
		fmt.Fprintf(&b, " until %s", rule.EndDate.Format("2006-01-02"))
	}
	return b.String()
}

func kindString(rule *models.RecurrenceRule) string {
	if rule == nil {
		return ""
	}
	return string(rule.Kind)
}

package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func makeEvent(id int, start time.Time, rule *models.RecurrenceRule) *models.CalendarEvent {
	return &models.CalendarEvent{
		EventID:    id,
		UserID:     1,
		Title:      "Standup",
		StartTime:  start,
		Recurrence: rule,
	}
}

func starts(evs []*models.CalendarEvent) []time.Time {
	out := make([]time.Time, len(evs))
	for i, ev := range evs {
		out[i] = ev.StartTime
	}
	return out
}

func TestExpandDailyEveryOtherDay(t *testing.T) {
	ev := makeEvent(7, date(2024, time.January, 1, 10, 0), &models.RecurrenceRule{
		Kind:     models.RecurrenceDaily,
		Interval: 2,
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 10, 23, 59))

	require.Len(t, got, 5)
	assert.Equal(t, []time.Time{
		date(2024, time.January, 1, 10, 0),
		date(2024, time.January, 3, 10, 0),
		date(2024, time.January, 5, 10, 0),
		date(2024, time.January, 7, 10, 0),
		date(2024, time.January, 9, 10, 0),
	}, starts(got))
	assert.Equal(t, "7-20240103", got[1].InstanceID)
}

func TestExpandWeeklyMonWedFri(t *testing.T) {
	// 2024-01-01 is a Monday.
	ev := makeEvent(3, date(2024, time.January, 1, 9, 0), &models.RecurrenceRule{
		Kind:       models.RecurrenceWeekly,
		Interval:   1,
		DaysOfWeek: []int{1, 3, 5},
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 7, 23, 59))

	require.Len(t, got, 3)
	assert.Equal(t, []time.Time{
		date(2024, time.January, 1, 9, 0),
		date(2024, time.January, 3, 9, 0),
		date(2024, time.January, 5, 9, 0),
	}, starts(got))
}

func TestExpandWeeklyMultiWeekInterval(t *testing.T) {
	// Interval 2 jumps whole weeks from the anchor's week, so matched weeks
	// are the anchor week, two weeks later, four weeks later.
	ev := makeEvent(4, date(2024, time.January, 1, 9, 0), &models.RecurrenceRule{
		Kind:     models.RecurrenceWeekly,
		Interval: 2,
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 31, 23, 59))

	assert.Equal(t, []time.Time{
		date(2024, time.January, 1, 9, 0),
		date(2024, time.January, 15, 9, 0),
		date(2024, time.January, 29, 9, 0),
	}, starts(got))
}

func TestExpandMonthlyDay31SkipsShortMonths(t *testing.T) {
	ev := makeEvent(9, date(2024, time.January, 31, 18, 0), &models.RecurrenceRule{
		Kind:       models.RecurrenceMonthly,
		Interval:   1,
		DayOfMonth: 31,
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.April, 30, 23, 59))

	// February and April have no 31st; they produce nothing rather than
	// clamping to their last day.
	assert.Equal(t, []time.Time{
		date(2024, time.January, 31, 18, 0),
		date(2024, time.March, 31, 18, 0),
	}, starts(got))
}

func TestExpandYearlySkipsNonLeapFeb29(t *testing.T) {
	ev := makeEvent(2, date(2024, time.February, 29, 12, 0), &models.RecurrenceRule{
		Kind:     models.RecurrenceYearly,
		Interval: 1,
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2028, time.December, 31, 23, 59))

	assert.Equal(t, []time.Time{
		date(2024, time.February, 29, 12, 0),
		date(2028, time.February, 29, 12, 0),
	}, starts(got))
}

func TestExpandWindowContainment(t *testing.T) {
	windowStart := date(2024, time.March, 10, 0, 0)
	windowEnd := date(2024, time.March, 20, 23, 59)

	events := []*models.CalendarEvent{
		makeEvent(1, date(2024, time.January, 5, 8, 30), &models.RecurrenceRule{Kind: models.RecurrenceDaily, Interval: 3}),
		makeEvent(2, date(2024, time.February, 1, 14, 0), &models.RecurrenceRule{Kind: models.RecurrenceWeekly, Interval: 1, DaysOfWeek: []int{2, 4}}),
		makeEvent(3, date(2023, time.December, 15, 9, 0), &models.RecurrenceRule{Kind: models.RecurrenceMonthly, Interval: 1}),
	}

	got := Expand(events, windowStart, windowEnd)
	require.NotEmpty(t, got)
	for _, ev := range got {
		assert.False(t, ev.StartTime.Before(windowStart), "occurrence %v before window", ev.StartTime)
		assert.False(t, ev.StartTime.After(windowEnd), "occurrence %v after window", ev.StartTime)
	}
}

func TestExpandPreservesDuration(t *testing.T) {
	start := date(2024, time.January, 1, 10, 0)
	end := start.Add(45 * time.Minute)
	ev := makeEvent(5, start, &models.RecurrenceRule{Kind: models.RecurrenceDaily, Interval: 1})
	ev.EndTime = &end

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 5, 23, 59))

	require.Len(t, got, 5)
	for _, occ := range got {
		require.NotNil(t, occ.EndTime)
		assert.Equal(t, 45*time.Minute, occ.EndTime.Sub(occ.StartTime))
	}
}

func TestExpandDoesNotMutateInput(t *testing.T) {
	start := date(2024, time.January, 1, 10, 0)
	ev := makeEvent(5, start, &models.RecurrenceRule{Kind: models.RecurrenceDaily, Interval: 1})

	Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 5, 23, 59))

	assert.Equal(t, start, ev.StartTime)
	assert.Empty(t, ev.InstanceID)
}

func TestExpandUnknownKindPassesThrough(t *testing.T) {
	ev := makeEvent(11, date(2024, time.January, 2, 10, 0), &models.RecurrenceRule{
		Kind:     models.RecurrenceKind("lunar"),
		Interval: 1,
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 7, 23, 59))

	require.Len(t, got, 1)
	assert.Same(t, ev, got[0])
}

func TestExpandNonRecurringOutsideWindowDropped(t *testing.T) {
	ev := makeEvent(11, date(2024, time.February, 2, 10, 0), nil)

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 7, 23, 59))

	assert.Empty(t, got)
}

func TestExpandZeroIntervalCoercedToOne(t *testing.T) {
	ev := makeEvent(6, date(2024, time.January, 1, 10, 0), &models.RecurrenceRule{
		Kind:     models.RecurrenceDaily,
		Interval: 0,
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 3, 23, 59))

	assert.Len(t, got, 3)
}

func TestExpandEndDateIsExclusive(t *testing.T) {
	endDate := date(2024, time.January, 5, 10, 0)
	ev := makeEvent(6, date(2024, time.January, 1, 10, 0), &models.RecurrenceRule{
		Kind:     models.RecurrenceDaily,
		Interval: 1,
		EndDate:  &endDate,
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 31, 23, 59))

	require.Len(t, got, 4)
	assert.Equal(t, date(2024, time.January, 4, 10, 0), got[len(got)-1].StartTime)
}

func TestExpandExceptionDatesSkipped(t *testing.T) {
	ev := makeEvent(6, date(2024, time.January, 1, 10, 0), &models.RecurrenceRule{
		Kind:     models.RecurrenceDaily,
		Interval: 1,
		// Exceptions match on calendar day regardless of clock time.
		Exceptions: []time.Time{date(2024, time.January, 3, 0, 0)},
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 1, 0, 0), date(2024, time.January, 5, 23, 59))

	require.Len(t, got, 4)
	for _, occ := range got {
		assert.NotEqual(t, 3, occ.StartTime.Day())
	}
}

func TestExpandInvertedWindowEmpty(t *testing.T) {
	ev := makeEvent(6, date(2024, time.January, 1, 10, 0), &models.RecurrenceRule{
		Kind:     models.RecurrenceDaily,
		Interval: 1,
	})

	got := Expand([]*models.CalendarEvent{ev},
		date(2024, time.January, 10, 0, 0), date(2024, time.January, 1, 0, 0))

	assert.Empty(t, got)
}

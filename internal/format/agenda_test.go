package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mohammedsoliman1619/fpp815/internal/timeline"
)

func item(id string, cat timeline.Category, start time.Time, minutes int) timeline.Item {
	return timeline.Item{
		ID:              id,
		Title:           "Item " + id,
		StartTime:       start,
		DurationMinutes: minutes,
		Category:        cat,
	}
}

func TestAgendaGroupsByDayWithWorkload(t *testing.T) {
	day := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)
	items := []timeline.Item{
		item("1", timeline.CategoryTask, day.Add(9*time.Hour), 90),
		item("2", timeline.CategoryReminder, day.Add(12*time.Hour), 15),
		item("3", timeline.CategoryEvent, day.AddDate(0, 0, 1).Add(10*time.Hour), 300),
	}

	got := Agenda("This week", items, day, day.AddDate(0, 0, 6))

	assert.Contains(t, got, "**This week**")
	assert.Contains(t, got, "May 6 – May 12", "multi-day window shows its range")
	assert.Contains(t, got, "2024-05-06 (Mon)")
	assert.Contains(t, got, "1h45m (light)")
	assert.Contains(t, got, "2024-05-07 (Tue)")
	assert.Contains(t, got, "5h (heavy)")
}

func TestAgendaSingleDayOmitsRange(t *testing.T) {
	day := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)
	items := []timeline.Item{item("1", timeline.CategoryTask, day.Add(9*time.Hour), 30)}

	got := Agenda("Today", items, day, day.Add(23*time.Hour+59*time.Minute))

	assert.NotContains(t, got, "(May 6")
}

func TestAgendaEmpty(t *testing.T) {
	day := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)
	got := Agenda("Today", nil, day, day)
	assert.Contains(t, got, "Nothing scheduled.")
}

func TestLine(t *testing.T) {
	start := time.Date(2024, time.May, 6, 15, 4, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	it := timeline.Item{
		Title:        "Sprint review",
		StartTime:    start,
		EndTime:      &end,
		Category:     timeline.CategoryEvent,
		Project:      "Apollo",
		IsAutoRolled: true,
	}

	got := Line(it)
	assert.Equal(t, "15:04–16:04 📅 Sprint review [Apollo] (rolled over)", got)
}

func TestConflicts(t *testing.T) {
	start := time.Date(2024, time.May, 6, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	a := timeline.Item{ID: "a", Title: "Standup", StartTime: start, EndTime: &end, Category: timeline.CategoryEvent}
	b := timeline.Item{ID: "b", Title: "1:1", StartTime: start.Add(30 * time.Minute), EndTime: &end, Category: timeline.CategoryEvent}

	got := Conflicts(a, []timeline.Item{b})
	assert.True(t, strings.HasPrefix(got, "⚠️ **Standup** overlaps with:"))
	assert.Contains(t, got, "1:1")

	assert.Empty(t, Conflicts(a, nil))
}

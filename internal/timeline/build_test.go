package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func sampleInputs() ([]*models.Task, []*models.CalendarEvent, []*models.Goal, []*models.Reminder, []*models.TimeBlock, []*models.Project) {
	tasks := []*models.Task{
		{TaskID: 1, Title: "Write report", Status: models.TaskTodo, DueDate: timePtr(at(2024, time.May, 6, 9, 0)), ProjectID: intPtr(10)},
		{TaskID: 2, Title: "No due date", Status: models.TaskTodo},
		{TaskID: 3, Title: "Sized task", Status: models.TaskTodo, DueDate: timePtr(at(2024, time.May, 6, 13, 0)), EstimatedMinutes: 90},
	}
	events := []*models.CalendarEvent{
		{EventID: 7, Title: "Standup", StartTime: at(2024, time.May, 6, 9, 0), EndTime: timePtr(at(2024, time.May, 6, 9, 15))},
		{EventID: 8, Title: "Open ended", StartTime: at(2024, time.May, 6, 11, 0)},
	}
	goals := []*models.Goal{
		{GoalID: 4, Title: "Ship v2", Status: models.GoalActive, TargetDate: timePtr(at(2024, time.May, 6, 9, 0))},
		{GoalID: 5, Title: "No target"},
	}
	reminders := []*models.Reminder{
		{ReminderID: 6, Message: "Call dentist", RemindAt: at(2024, time.May, 6, 10, 30)},
	}
	blocks := []*models.TimeBlock{
		{BlockID: 9, Title: "Deep work", StartTime: at(2024, time.May, 6, 14, 0), EndTime: at(2024, time.May, 6, 16, 0), DurationMinutes: 120},
	}
	projects := []*models.Project{
		{ProjectID: 10, Name: "Apollo"},
	}
	return tasks, events, goals, reminders, blocks, projects
}

func TestBuildSortsAndNormalizes(t *testing.T) {
	items := Build(sampleInputs())

	// Task 2 and goal 5 have no calendar anchor and are dropped.
	require.Len(t, items, 7)

	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].StartTime.Before(items[i-1].StartTime),
			"items out of order at %d", i)
	}

	// Equal start times keep category order: task, event, goal.
	assert.Equal(t, CategoryTask, items[0].Category)
	assert.Equal(t, CategoryEvent, items[1].Category)
	assert.Equal(t, CategoryGoal, items[2].Category)
}

func TestBuildDurationDefaults(t *testing.T) {
	items := Build(sampleInputs())

	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	assert.Equal(t, 30, byID["1"].DurationMinutes, "task default")
	assert.Equal(t, 90, byID["3"].DurationMinutes, "explicit estimate wins")
	assert.Equal(t, 15, byID["7"].DurationMinutes, "event end-start")
	assert.Equal(t, 60, byID["8"].DurationMinutes, "event default")
	assert.Equal(t, 30, byID["goal-4"].DurationMinutes, "goal default")
	assert.Equal(t, 15, byID["reminder-6"].DurationMinutes, "reminder default")
	assert.Equal(t, 120, byID["block-9"].DurationMinutes, "stored block duration")
}

func TestBuildProjectAndColors(t *testing.T) {
	items := Build(sampleInputs())

	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	assert.Equal(t, "Apollo", byID["1"].Project)
	assert.Equal(t, ProjectColor("Apollo"), byID["1"].Color)
	assert.Equal(t, neutralColor, byID["3"].Color, "projectless task")
	assert.Equal(t, eventColor, byID["7"].Color)
	assert.Equal(t, goalColor, byID["goal-4"].Color)
	assert.Equal(t, reminderColor, byID["reminder-6"].Color)
}

func TestBuildEventInstanceID(t *testing.T) {
	_, events, _, _, _, _ := sampleInputs()
	events[0].InstanceID = "7-20240506"

	items := Build(nil, events, nil, nil, nil, nil)
	assert.Equal(t, "7-20240506", items[0].ID)
	assert.Equal(t, "8", items[1].ID)
}

func TestBuildIsDeterministic(t *testing.T) {
	first := Build(sampleInputs())
	second := Build(sampleInputs())

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].StartTime, second[i].StartTime)
		assert.Equal(t, first[i].DurationMinutes, second[i].DurationMinutes)
		assert.Equal(t, first[i].Color, second[i].Color)
	}
}

func TestBuildDoesNotMutateSources(t *testing.T) {
	tasks, events, goals, reminders, blocks, projects := sampleInputs()
	Build(tasks, events, goals, reminders, blocks, projects)

	assert.Equal(t, "Write report", tasks[0].Title)
	assert.False(t, tasks[0].IsAutoRolled)
	assert.Nil(t, events[1].EndTime)
}

func TestProjectColorStableAndBounded(t *testing.T) {
	names := []string{"Apollo", "zeta", "工作", "a", "Apollo"}
	seen := make(map[string]string)
	for _, name := range names {
		c := ProjectColor(name)
		if prev, ok := seen[name]; ok {
			assert.Equal(t, prev, c, "color changed between calls for %q", name)
		}
		seen[name] = c
		assert.Contains(t, palette, c)
	}
	assert.Equal(t, neutralColor, ProjectColor(""))
}

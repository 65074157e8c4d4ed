package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

// Build merges tasks, expanded events, goals, reminders and time blocks into
// one list sorted ascending by start time. Ties keep input order: tasks before
// events before goals before reminders before blocks, each list in its own
// order. Tasks without a due date and goals without a target date are not
// calendar-anchored and produce no item.
func Build(
	tasks []*models.Task,
	events []*models.CalendarEvent,
	goals []*models.Goal,
	reminders []*models.Reminder,
	blocks []*models.TimeBlock,
	projects []*models.Project,
) []Item {
	projectNames := make(map[int]string, len(projects))
	for _, p := range projects {
		projectNames[p.ProjectID] = p.Name
	}

	items := make([]Item, 0, len(tasks)+len(events)+len(goals)+len(reminders)+len(blocks))

	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		project := ""
		if t.ProjectID != nil {
			project = projectNames[*t.ProjectID]
		}
		minutes := t.EstimatedMinutes
		if minutes <= 0 {
			minutes = defaultTaskMinutes
		}
		items = append(items, Item{
			ID:              fmt.Sprintf("%d", t.TaskID),
			Title:           t.Title,
			Description:     t.Description,
			StartTime:       *t.DueDate,
			DurationMinutes: minutes,
			Category:        CategoryTask,
			Color:           ProjectColor(project),
			Project:         project,
			Priority:        t.Priority,
			Status:          string(t.Status),
			Tags:            t.Tags,
			IsAutoRolled:    t.IsAutoRolled,
			Source:          t,
		})
	}

	for _, e := range events {
		minutes := defaultEventMinutes
		var end *time.Time
		if e.EndTime != nil {
			t := *e.EndTime
			end = &t
			minutes = int(e.EndTime.Sub(e.StartTime).Minutes())
		}
		color := e.Color
		if color == "" {
			color = eventColor
		}
		items = append(items, Item{
			ID:              e.SourceID(),
			Title:           e.Title,
			Description:     e.Description,
			StartTime:       e.StartTime,
			EndTime:         end,
			DurationMinutes: minutes,
			Category:        CategoryEvent,
			Color:           color,
			Tags:            e.Tags,
			Source:          e,
		})
	}

	for _, g := range goals {
		if g.TargetDate == nil {
			continue
		}
		items = append(items, Item{
			ID:              fmt.Sprintf("goal-%d", g.GoalID),
			Title:           g.Title,
			Description:     g.Description,
			StartTime:       *g.TargetDate,
			DurationMinutes: defaultGoalMinutes,
			Category:        CategoryGoal,
			Color:           goalColor,
			Status:          string(g.Status),
			Tags:            g.Tags,
			Source:          g,
		})
	}

	for _, r := range reminders {
		items = append(items, Item{
			ID:              fmt.Sprintf("reminder-%d", r.ReminderID),
			Title:           r.Message,
			Description:     r.Description,
			StartTime:       r.RemindAt,
			DurationMinutes: defaultReminderMinutes,
			Category:        CategoryReminder,
			Color:           reminderColor,
			Tags:            r.Tags,
			Source:          r,
		})
	}

	for _, b := range blocks {
		end := b.EndTime
		color := b.Color
		if color == "" {
			color = neutralColor
		}
		items = append(items, Item{
			ID:              fmt.Sprintf("block-%d", b.BlockID),
			Title:           b.Title,
			StartTime:       b.StartTime,
			EndTime:         &end,
			DurationMinutes: b.DurationMinutes, // stored value wins over end-start
			Category:        CategoryTimeBlock,
			Color:           color,
			Source:          b,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartTime.Before(items[j].StartTime)
	})
	return items
}

package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/events"
	"github.com/mohammedsoliman1619/fpp815/internal/format"
	"github.com/mohammedsoliman1619/fpp815/internal/recurrence"
	"github.com/mohammedsoliman1619/fpp815/internal/timeline"
)

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// buildTimeline loads the current snapshot of every entity kind, expands
// recurring events over the window and reconciles all of it into one sorted
// item list.
func (h *Handlers) buildTimeline(ctx context.Context, userID int64, windowStart, windowEnd time.Time) ([]timeline.Item, error) {
	tasks, err := h.repos.Task.GetByUserID(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	candidates, err := h.repos.Event.GetCandidatesForWindow(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	goals, err := h.repos.Goal.GetByUserID(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	reminders, err := h.repos.Reminder.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}
	blocks, err := h.repos.TimeBlock.GetByDateRange(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load time blocks: %w", err)
	}
	projects, err := h.repos.Project.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	expanded := recurrence.Expand(candidates, windowStart, windowEnd)
	items := timeline.Build(tasks, expanded, goals, reminders, blocks, projects)

	// The timeline covers only the requested window; tasks and goals outside
	// it stay out of the agenda.
	inWindow := items[:0]
	for _, it := range items {
		if !it.StartTime.Before(windowStart) && !it.StartTime.After(windowEnd) {
			inWindow = append(inWindow, it)
		}
	}
	return inWindow, nil
}

func (h *Handlers) handleToday(ctx context.Context, msg *tgbotapi.Message) {
	now := time.Now()
	items, err := h.buildTimeline(ctx, msg.From.ID, startOfDay(now), endOfDay(now))
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to build today's agenda, please try again")
		return
	}

	h.sendMessage(msg.Chat.ID, format.Agenda("☀️ Today", items, startOfDay(now), endOfDay(now)))
}

func (h *Handlers) handleWeek(ctx context.Context, msg *tgbotapi.Message) {
	now := time.Now()
	windowStart := startOfDay(now)
	windowEnd := endOfDay(now.AddDate(0, 0, 6))
	items, err := h.buildTimeline(ctx, msg.From.ID, windowStart, windowEnd)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to build the week agenda, please try again")
		return
	}

	h.sendMessage(msg.Chat.ID, format.Agenda("🗓 Next seven days", items, windowStart, windowEnd))
}

func (h *Handlers) handleConflicts(ctx context.Context, msg *tgbotapi.Message) {
	now := time.Now()
	items, err := h.buildTimeline(ctx, msg.From.ID, startOfDay(now), endOfDay(now))
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to check conflicts, please try again")
		return
	}

	var sb strings.Builder
	reported := make(map[string]bool)
	for _, it := range items {
		if reported[it.ID] {
			continue
		}
		conflicts := timeline.FindConflicts(items, it)
		if len(conflicts) == 0 {
			continue
		}
		reported[it.ID] = true
		for _, c := range conflicts {
			reported[c.ID] = true
		}
		sb.WriteString(format.Conflicts(it, conflicts) + "\n")
	}

	if sb.Len() == 0 {
		h.sendMessage(msg.Chat.ID, "✅ No overlapping items today")
		return
	}
	h.sendMessage(msg.Chat.ID, sb.String())
}

func (h *Handlers) handleRollover(ctx context.Context, msg *tgbotapi.Message) {
	tasks, err := h.repos.Task.GetByUserID(ctx, msg.From.ID, false)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to load tasks, please try again")
		return
	}

	rolled := 0
	for i, task := range timeline.RolloverStale(tasks, time.Now()) {
		if task == tasks[i] {
			continue // untouched tasks come back as the same pointer
		}
		if err := h.repos.Task.Update(ctx, task); err != nil {
			continue
		}
		h.bus.Publish(ctx, events.Event{
			Kind:     events.TaskRolled,
			UserID:   msg.From.ID,
			EntityID: task.TaskID,
			Payload:  map[string]string{"due": task.DueDate.Format(dateTimeLayout)},
		})
		rolled++
	}

	if rolled == 0 {
		h.sendMessage(msg.Chat.ID, "✅ Nothing overdue to roll over")
		return
	}
	h.sendMessage(msg.Chat.ID, fmt.Sprintf("⏩ Rolled %d overdue task(s) to today", rolled))
}

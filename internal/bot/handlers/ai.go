package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/ai"
	"github.com/mohammedsoliman1619/fpp815/internal/events"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

func (h *Handlers) handleAIMessage(ctx context.Context, msg *tgbotapi.Message) {
	if h.ai == nil {
		h.sendMessage(msg.Chat.ID, "Natural-language input is not enabled. Use /help for commands.")
		return
	}

	intent, err := h.ai.ParseIntent(ctx, msg.Text)
	if err != nil {
		log.Printf("Failed to parse intent: %v", err)
		h.sendMessage(msg.Chat.ID, "Sorry, I couldn't understand that. Try /help for the command list.")
		return
	}

	h.executeIntent(ctx, msg, intent)
}

func (h *Handlers) executeIntent(ctx context.Context, msg *tgbotapi.Message, intent *ai.Intent) {
	p := intent.Parameters
	userID := msg.From.ID

	switch intent.Action {
	case "create_task":
		task := &models.Task{
			UserID:   userID,
			Title:    p["title"],
			Status:   models.TaskTodo,
			Priority: intParam(p, "priority", 3),
		}
		task.DueDate, _ = parseWhen(p["due_date"])
		task.EstimatedMinutes = intParam(p, "estimated_minutes", 0)
		if name := p["project"]; name != "" {
			if project, err := h.repos.Project.GetOrCreate(ctx, userID, name); err == nil {
				task.ProjectID = &project.ProjectID
			}
		}
		if task.Title == "" || h.repos.Task.Create(ctx, task) != nil {
			h.sendMessage(msg.Chat.ID, "Failed to create the task")
			return
		}
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Task created (ID: %d)", task.TaskID))

	case "list_task":
		h.handleTaskList(ctx, msg)

	case "complete_task":
		if id, ok := idParam(p); ok {
			if err := h.repos.Task.SetStatus(ctx, id, userID, models.TaskCompleted); err == nil {
				h.bus.Publish(ctx, events.Event{Kind: events.TaskCompleted, UserID: userID, EntityID: id})
				h.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Task #%d done!", id))
				return
			}
		}
		h.sendMessage(msg.Chat.ID, "Which task? Give me its id.")

	case "delete_task":
		if id, ok := idParam(p); ok && h.repos.Task.Delete(ctx, id, userID) == nil {
			h.sendMessage(msg.Chat.ID, fmt.Sprintf("🗑 Task #%d deleted", id))
			return
		}
		h.sendMessage(msg.Chat.ID, "Which task? Give me its id.")

	case "create_event":
		start, err := parseWhen(p["start_time"])
		if err != nil || start == nil {
			h.sendMessage(msg.Chat.ID, "I need a start time for the event.")
			return
		}
		event := &models.CalendarEvent{
			UserID:    userID,
			Title:     p["title"],
			StartTime: *start,
		}
		event.EndTime, _ = parseWhen(p["end_time"])
		event.Recurrence = recurrenceFromParams(p)
		if event.Title == "" || h.repos.Event.Create(ctx, event) != nil {
			h.sendMessage(msg.Chat.ID, "Failed to create the event")
			return
		}
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("📅 Event created (ID: %d)", event.EventID))

	case "list_event":
		h.handleEventList(ctx, msg)

	case "delete_event":
		if id, ok := idParam(p); ok && h.repos.Event.Delete(ctx, id, userID) == nil {
			h.sendMessage(msg.Chat.ID, fmt.Sprintf("🗑 Event #%d deleted", id))
			return
		}
		h.sendMessage(msg.Chat.ID, "Which event? Give me its id.")

	case "create_goal":
		goal := &models.Goal{UserID: userID, Title: p["title"], Status: models.GoalActive}
		goal.TargetDate, _ = parseWhen(p["target_date"])
		if goal.Title == "" || h.repos.Goal.Create(ctx, goal) != nil {
			h.sendMessage(msg.Chat.ID, "Failed to create the goal")
			return
		}
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("🎯 Goal created (ID: %d)", goal.GoalID))

	case "list_goal":
		h.handleGoalList(ctx, msg)

	case "update_goal":
		if id, ok := idParam(p); ok {
			if progress := intParam(p, "progress", -1); progress >= 0 {
				if err := h.repos.Goal.SetProgress(ctx, id, userID, progress); err == nil {
					h.sendMessage(msg.Chat.ID, fmt.Sprintf("🎯 Goal #%d at %d%%", id, progress))
					return
				}
			}
		}
		h.sendMessage(msg.Chat.ID, "Which goal, and what progress?")

	case "create_reminder":
		at, err := parseWhen(p["remind_at"])
		if err != nil || at == nil {
			h.sendMessage(msg.Chat.ID, "When should I remind you?")
			return
		}
		reminder := &models.Reminder{
			UserID:     userID,
			Message:    firstNonEmpty(p["message"], p["title"]),
			RemindAt:   *at,
			Enabled:    true,
			Recurrence: recurrenceFromParams(p),
		}
		if reminder.Message == "" || h.repos.Reminder.Create(ctx, reminder) != nil {
			h.sendMessage(msg.Chat.ID, "Failed to create the reminder")
			return
		}
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("⏰ Reminder set for %s", reminder.RemindAt.Format(dateTimeLayout)))

	case "list_reminder":
		h.handleReminderList(ctx, msg)

	case "delete_reminder":
		if id, ok := idParam(p); ok && h.repos.Reminder.Delete(ctx, id, userID) == nil {
			h.sendMessage(msg.Chat.ID, fmt.Sprintf("🗑 Reminder #%d deleted", id))
			return
		}
		h.sendMessage(msg.Chat.ID, "Which reminder? Give me its id.")

	case "create_block":
		start, _ := parseWhen(p["start_time"])
		end, _ := parseWhen(p["end_time"])
		if start == nil || end == nil || !end.After(*start) {
			h.sendMessage(msg.Chat.ID, "I need a start and end time for the block.")
			return
		}
		block := &models.TimeBlock{
			UserID:          userID,
			Title:           p["title"],
			StartTime:       *start,
			EndTime:         *end,
			DurationMinutes: int(end.Sub(*start).Minutes()),
		}
		if h.repos.TimeBlock.Create(ctx, block) != nil {
			h.sendMessage(msg.Chat.ID, "Failed to create the time block")
			return
		}
		h.sendMessage(msg.Chat.ID, fmt.Sprintf("🧱 Time block created (ID: %d)", block.BlockID))

	case "show_agenda":
		if strings.EqualFold(p["day"], "week") {
			h.handleWeek(ctx, msg)
		} else {
			h.handleToday(ctx, msg)
		}

	default:
		reply := intent.Reply
		if reply == "" {
			reply = "I'm not sure what to do with that. Try /help."
		}
		h.sendMessage(msg.Chat.ID, reply)
	}
}

func recurrenceFromParams(p map[string]string) *models.RecurrenceRule {
	kind := models.RecurrenceKind(p["recurrence_kind"])
	rule := &models.RecurrenceRule{Kind: kind, Interval: 1}
	if !rule.IsRecurring() {
		return nil
	}
	if n, err := strconv.Atoi(p["recurrence_interval"]); err == nil && n >= 1 {
		rule.Interval = n
	}
	for _, d := range strings.Split(p["days_of_week"], ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(d)); err == nil && n >= 0 && n <= 6 {
			rule.DaysOfWeek = append(rule.DaysOfWeek, n)
		}
	}
	if n, err := strconv.Atoi(p["day_of_month"]); err == nil && n >= 1 && n <= 31 {
		rule.DayOfMonth = n
	}
	if n, err := strconv.Atoi(p["month_of_year"]); err == nil && n >= 1 && n <= 12 {
		rule.MonthOfYear = n
	}
	return rule
}

func idParam(p map[string]string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(p["id"]))
	return id, err == nil && id > 0
}

func intParam(p map[string]string, key string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(p[key])); err == nil {
		return n
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

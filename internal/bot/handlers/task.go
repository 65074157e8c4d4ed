package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/events"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

const dateTimeLayout = "2006-01-02 15:04"

// parseWhen accepts "2006-01-02 15:04" or a bare date.
func parseWhen(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.Local); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q, expected YYYY-MM-DD [HH:MM]", s)
	}
	return &t, nil
}

func (h *Handlers) handleTask(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		h.sendMessage(msg.Chat.ID, "Please provide a title\nUsage: /task <title> [| due YYYY-MM-DD HH:MM]")
		return
	}

	parts := strings.Split(args, "|")
	task := &models.Task{
		UserID:   msg.From.ID,
		Title:    strings.TrimSpace(parts[0]),
		Status:   models.TaskTodo,
		Priority: 3,
	}
	if len(parts) > 1 {
		due, err := parseWhen(parts[1])
		if err != nil {
			h.sendMessage(msg.Chat.ID, err.Error())
			return
		}
		task.DueDate = due
	}

	if err := h.repos.Task.Create(ctx, task); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to create the task, please try again")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Task created (ID: %d)", task.TaskID))
}

func (h *Handlers) handleTaskList(ctx context.Context, msg *tgbotapi.Message) {
	tasks, err := h.repos.Task.GetByUserID(ctx, msg.From.ID, false)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to load tasks, please try again")
		return
	}

	if len(tasks) == 0 {
		h.sendMessage(msg.Chat.ID, "✅ No open tasks")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 **Open tasks**\n\n")
	for _, task := range tasks {
		title := task.Title
		if len(title) > 40 {
			title = title[:40] + "..."
		}
		sb.WriteString(fmt.Sprintf("**%d.** %s", task.TaskID, title))
		if task.DueDate != nil {
			sb.WriteString("\n   📅 " + task.DueDate.Format(dateTimeLayout))
			if task.IsAutoRolled {
				sb.WriteString(" (rolled over)")
			}
		}
		if done, total := subtaskProgress(task); total > 0 {
			sb.WriteString(fmt.Sprintf("\n   ☑ %d/%d subtasks", done, total))
		}
		sb.WriteString("\n\n")
	}

	h.sendMessage(msg.Chat.ID, sb.String())
}

func (h *Handlers) handleTaskDone(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		h.sendMessage(msg.Chat.ID, "Please provide a task id\nUsage: /done <id>")
		return
	}

	taskID, err := strconv.Atoi(args)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Invalid task id")
		return
	}

	task, err := h.repos.Task.GetByID(ctx, taskID, msg.From.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Task not found, check the id")
		return
	}

	if err := h.repos.Task.SetStatus(ctx, taskID, msg.From.ID, models.TaskCompleted); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to complete the task")
		return
	}

	// Downstream consumers (goal progress, audit) react to the event,
	// not to the row update.
	h.bus.Publish(ctx, events.Event{
		Kind:     events.TaskCompleted,
		UserID:   msg.From.ID,
		EntityID: taskID,
		Payload:  map[string]string{"title": task.Title, "tags": task.Tags},
	})

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Task #%d done!", taskID))
}

func (h *Handlers) handleSubtask(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	fields := strings.SplitN(args, " ", 2)
	if len(fields) < 2 {
		h.sendMessage(msg.Chat.ID, "Usage: /subtask <task-id> <title>")
		return
	}

	taskID, err := strconv.Atoi(fields[0])
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Invalid task id")
		return
	}

	task, err := h.repos.Task.GetByID(ctx, taskID, msg.From.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Task not found, check the id")
		return
	}

	ix := models.NewSubtaskIndex(task.Subtasks)
	node := &models.Subtask{
		ID:    fmt.Sprintf("%d-%d", taskID, time.Now().UnixNano()),
		Title: strings.TrimSpace(fields[1]),
	}
	if err := ix.Add("", node); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to add the subtask")
		return
	}
	task.Subtasks = ix.Roots()

	if err := h.repos.Task.Update(ctx, task); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to save the subtask")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Subtask added to task #%d", taskID))
}

func subtaskProgress(task *models.Task) (done, total int) {
	return models.NewSubtaskIndex(task.Subtasks).Progress()
}

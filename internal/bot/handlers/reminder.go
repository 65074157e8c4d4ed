package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
	"github.com/mohammedsoliman1619/fpp815/internal/rrule"
)

func (h *Handlers) handleReminder(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	parts := strings.Split(args, "|")
	if args == "" || len(parts) < 2 {
		h.sendMessage(msg.Chat.ID, "Usage: /remind <text> | <YYYY-MM-DD HH:MM> [| daily/weekly/...]")
		return
	}

	at, err := parseWhen(parts[1])
	if err != nil || at == nil {
		h.sendMessage(msg.Chat.ID, "Invalid reminder time, expected YYYY-MM-DD HH:MM")
		return
	}

	reminder := &models.Reminder{
		UserID:   msg.From.ID,
		Message:  strings.TrimSpace(parts[0]),
		RemindAt: *at,
		Enabled:  true,
	}
	if len(parts) > 2 {
		rule, err := parseRecurrenceSpec(parts[2])
		if err != nil {
			h.sendMessage(msg.Chat.ID, err.Error())
			return
		}
		reminder.Recurrence = rule
	}

	if err := h.repos.Reminder.Create(ctx, reminder); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to create the reminder, please try again")
		return
	}

	reply := fmt.Sprintf("⏰ Reminder set for %s (ID: %d)", reminder.RemindAt.Format(dateTimeLayout), reminder.ReminderID)
	if reminder.IsRecurring() {
		reply += "\n🔄 " + rrule.Describe(reminder.Recurrence)
	}
	h.sendMessage(msg.Chat.ID, reply)
}

func (h *Handlers) handleReminderList(ctx context.Context, msg *tgbotapi.Message) {
	reminders, err := h.repos.Reminder.GetByUserID(ctx, msg.From.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to load reminders, please try again")
		return
	}

	if len(reminders) == 0 {
		h.sendMessage(msg.Chat.ID, "⏰ No reminders")
		return
	}

	var sb strings.Builder
	sb.WriteString("⏰ **Reminders**\n\n")
	for _, reminder := range reminders {
		state := "🔔"
		if !reminder.Enabled {
			state = "🔕"
		}
		sb.WriteString(fmt.Sprintf("%s **%d.** %s\n   🕐 %s", state, reminder.ReminderID,
			reminder.Message, reminder.RemindAt.Format(dateTimeLayout)))
		if reminder.IsRecurring() {
			sb.WriteString("\n   🔄 " + rrule.Describe(reminder.Recurrence))
		}
		sb.WriteString("\n\n")
	}

	h.sendMessage(msg.Chat.ID, sb.String())
}

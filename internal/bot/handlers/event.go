package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
	"github.com/mohammedsoliman1619/fpp815/internal/rrule"
)

// parseRecurrenceSpec parses "daily", "weekly:2", "monthly:1:15" style specs:
// kind[:interval[:dayOfMonth]]. Weekly day sets come from "weekly@1,3,5".
func parseRecurrenceSpec(spec string) (*models.RecurrenceRule, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "none" {
		return nil, nil
	}

	var days []int
	if at := strings.Index(spec, "@"); at >= 0 {
		for _, d := range strings.Split(spec[at+1:], ",") {
			n, err := strconv.Atoi(strings.TrimSpace(d))
			if err != nil || n < 0 || n > 6 {
				return nil, fmt.Errorf("invalid weekday %q, expected 0-6 (0 = Sunday)", d)
			}
			days = append(days, n)
		}
		spec = spec[:at]
	}

	parts := strings.Split(spec, ":")
	rule := &models.RecurrenceRule{
		Kind:       models.RecurrenceKind(parts[0]),
		Interval:   1,
		DaysOfWeek: days,
	}
	if !rule.IsRecurring() {
		return nil, fmt.Errorf("unknown recurrence %q, expected daily/weekly/monthly/yearly", parts[0])
	}
	if len(parts) > 1 {
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid interval %q", parts[1])
		}
		rule.Interval = n
	}
	if len(parts) > 2 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 || n > 31 {
			return nil, fmt.Errorf("invalid day of month %q", parts[2])
		}
		rule.DayOfMonth = n
	}
	return rule, nil
}

func (h *Handlers) handleEvent(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	parts := strings.Split(args, "|")
	if args == "" || len(parts) < 2 {
		h.sendMessage(msg.Chat.ID, "Usage: /event <title> | <start> [| <end>] [| daily/weekly/monthly/yearly[:N]]")
		return
	}

	start, err := parseWhen(parts[1])
	if err != nil || start == nil {
		h.sendMessage(msg.Chat.ID, "Invalid start time, expected YYYY-MM-DD [HH:MM]")
		return
	}

	event := &models.CalendarEvent{
		UserID:    msg.From.ID,
		Title:     strings.TrimSpace(parts[0]),
		StartTime: *start,
	}

	for _, part := range parts[2:] {
		if end, err := parseWhen(part); err == nil && end != nil {
			event.EndTime = end
			continue
		}
		rule, err := parseRecurrenceSpec(part)
		if err != nil {
			h.sendMessage(msg.Chat.ID, err.Error())
			return
		}
		event.Recurrence = rule
	}

	if event.EndTime != nil && !event.EndTime.After(event.StartTime) {
		h.sendMessage(msg.Chat.ID, "The end time must be after the start time")
		return
	}

	if err := h.repos.Event.Create(ctx, event); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to create the event, please try again")
		return
	}

	reply := fmt.Sprintf("📅 Event created (ID: %d)", event.EventID)
	if event.IsRecurring() {
		reply += "\n🔄 " + rrule.Describe(event.Recurrence)
	}
	h.sendMessage(msg.Chat.ID, reply)
}

func (h *Handlers) handleEventList(ctx context.Context, msg *tgbotapi.Message) {
	eventList, err := h.repos.Event.GetByUserID(ctx, msg.From.ID)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to load events, please try again")
		return
	}

	if len(eventList) == 0 {
		h.sendMessage(msg.Chat.ID, "📅 No events yet")
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 **Events**\n\n")
	for _, event := range eventList {
		sb.WriteString(fmt.Sprintf("**%d.** %s\n   🕐 %s", event.EventID, event.Title,
			event.StartTime.Format(dateTimeLayout)))
		if event.EndTime != nil {
			sb.WriteString("–" + event.EndTime.Format("15:04"))
		}
		if event.IsRecurring() {
			sb.WriteString("\n   🔄 " + rrule.Describe(event.Recurrence))
		}
		sb.WriteString("\n\n")
	}

	h.sendMessage(msg.Chat.ID, sb.String())
}

package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

func (h *Handlers) handleGoal(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		h.sendMessage(msg.Chat.ID, "Usage: /goal <title> [| target YYYY-MM-DD]")
		return
	}

	parts := strings.Split(args, "|")
	goal := &models.Goal{
		UserID: msg.From.ID,
		Title:  strings.TrimSpace(parts[0]),
		Status: models.GoalActive,
	}
	if len(parts) > 1 {
		target, err := parseWhen(parts[1])
		if err != nil {
			h.sendMessage(msg.Chat.ID, err.Error())
			return
		}
		goal.TargetDate = target
	}

	if err := h.repos.Goal.Create(ctx, goal); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to create the goal, please try again")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("🎯 Goal created (ID: %d)", goal.GoalID))
}

func (h *Handlers) handleGoalList(ctx context.Context, msg *tgbotapi.Message) {
	goals, err := h.repos.Goal.GetByUserID(ctx, msg.From.ID, false)
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to load goals, please try again")
		return
	}

	if len(goals) == 0 {
		h.sendMessage(msg.Chat.ID, "🎯 No active goals")
		return
	}

	var sb strings.Builder
	sb.WriteString("🎯 **Goals**\n\n")
	for _, goal := range goals {
		sb.WriteString(fmt.Sprintf("**%d.** %s — %d%%", goal.GoalID, goal.Title, goal.Progress))
		if goal.TargetDate != nil {
			sb.WriteString("\n   📅 " + goal.TargetDate.Format("2006-01-02"))
		}
		sb.WriteString("\n\n")
	}

	h.sendMessage(msg.Chat.ID, sb.String())
}

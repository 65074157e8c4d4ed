package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/models"
)

func (h *Handlers) handleBlock(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	parts := strings.Split(args, "|")
	if args == "" || len(parts) < 3 {
		h.sendMessage(msg.Chat.ID, "Usage: /block <title> | <start> | <end>")
		return
	}

	start, err := parseWhen(parts[1])
	if err != nil || start == nil {
		h.sendMessage(msg.Chat.ID, "Invalid start time, expected YYYY-MM-DD HH:MM")
		return
	}
	end, err := parseWhen(parts[2])
	if err != nil || end == nil {
		h.sendMessage(msg.Chat.ID, "Invalid end time, expected YYYY-MM-DD HH:MM")
		return
	}
	if !end.After(*start) {
		h.sendMessage(msg.Chat.ID, "The end time must be after the start time")
		return
	}

	block := &models.TimeBlock{
		UserID:          msg.From.ID,
		Title:           strings.TrimSpace(parts[0]),
		StartTime:       *start,
		EndTime:         *end,
		DurationMinutes: int(end.Sub(*start).Minutes()),
	}

	if err := h.repos.TimeBlock.Create(ctx, block); err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to create the time block, please try again")
		return
	}

	h.sendMessage(msg.Chat.ID, fmt.Sprintf("🧱 Time block created (ID: %d, %d min)", block.BlockID, block.DurationMinutes))
}

func (h *Handlers) handleBlockList(ctx context.Context, msg *tgbotapi.Message) {
	now := time.Now()
	weekEnd := now.AddDate(0, 0, 7)
	blocks, err := h.repos.TimeBlock.GetByDateRange(ctx, msg.From.ID, startOfDay(now), endOfDay(weekEnd))
	if err != nil {
		h.sendMessage(msg.Chat.ID, "Failed to load time blocks, please try again")
		return
	}

	if len(blocks) == 0 {
		h.sendMessage(msg.Chat.ID, "🧱 No time blocks in the next seven days")
		return
	}

	var sb strings.Builder
	sb.WriteString("🧱 **Time blocks**\n\n")
	for _, block := range blocks {
		sb.WriteString(fmt.Sprintf("**%d.** %s\n   🕐 %s–%s (%d min)\n\n",
			block.BlockID, block.Title,
			block.StartTime.Format(dateTimeLayout), block.EndTime.Format("15:04"),
			block.DurationMinutes))
	}

	h.sendMessage(msg.Chat.ID, sb.String())
}

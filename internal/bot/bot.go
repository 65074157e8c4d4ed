package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/ai"
	"github.com/mohammedsoliman1619/fpp815/internal/bot/handlers"
	"github.com/mohammedsoliman1619/fpp815/internal/database"
	"github.com/mohammedsoliman1619/fpp815/internal/events"
	"github.com/mohammedsoliman1619/fpp815/internal/repository"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *handlers.Handlers
}

func New(token string, db *database.DB, aiClient *ai.Client, bus *events.Bus) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	repos := &handlers.Repositories{
		User:      repository.NewUserRepository(db),
		Task:      repository.NewTaskRepository(db),
		Event:     repository.NewEventRepository(db),
		Goal:      repository.NewGoalRepository(db),
		Reminder:  repository.NewReminderRepository(db),
		TimeBlock: repository.NewTimeBlockRepository(db),
		Project:   repository.NewProjectRepository(db),
	}

	return &Bot{
		api:      api,
		handlers: handlers.New(api, repos, aiClient, bus),
	}, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handlers.HandleCommand(ctx, update.Message)
		return
	}

	b.handlers.HandleMessage(ctx, update.Message)
}

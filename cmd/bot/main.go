package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/ai"
	"github.com/mohammedsoliman1619/fpp815/internal/bot"
	"github.com/mohammedsoliman1619/fpp815/internal/config"
	"github.com/mohammedsoliman1619/fpp815/internal/database"
	"github.com/mohammedsoliman1619/fpp815/internal/events"
	"github.com/mohammedsoliman1619/fpp815/internal/repository"
	"github.com/mohammedsoliman1619/fpp815/internal/scheduler"
)

// goalProgressStep is how much a matching goal advances when a tagged task
// completes.
const goalProgressStep = 5

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate required config
	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Run migrations
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Initialize AI client (optional)
	var aiClient *ai.Client
	if cfg.AIAPIKey != "" {
		aiClient = ai.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		log.Printf("AI client initialized (model: %s)", cfg.AIModel)
	} else {
		log.Println("AI client not configured, natural language features disabled")
	}

	// Create Telegram API client for scheduler
	tgAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Failed to create Telegram API: %v", err)
	}

	// Create repositories for scheduler and event subscribers
	reminderRepo := repository.NewReminderRepository(db)
	eventRepo := repository.NewEventRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	blockRepo := repository.NewTimeBlockRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	// Completing a task tagged like an active goal nudges that goal forward.
	// Goal progress reacts to the published event, never to the row update.
	bus := events.NewBus()
	bus.Subscribe(events.TaskCompleted, func(ctx context.Context, ev events.Event) {
		taskTags := splitTags(ev.Payload["tags"])
		if len(taskTags) == 0 {
			return
		}
		goals, err := goalRepo.GetByUserID(ctx, ev.UserID, false)
		if err != nil {
			log.Printf("Failed to load goals for progress update: %v", err)
			return
		}
		for _, goal := range goals {
			if !tagsOverlap(taskTags, splitTags(goal.Tags)) {
				continue
			}
			if err := goalRepo.SetProgress(ctx, goal.GoalID, ev.UserID, goal.Progress+goalProgressStep); err != nil {
				log.Printf("Failed to advance goal %d: %v", goal.GoalID, err)
				continue
			}
			bus.Publish(ctx, events.Event{
				Kind:     events.GoalProgress,
				UserID:   ev.UserID,
				EntityID: goal.GoalID,
			})
		}
	})

	// Create and start scheduler
	sched := scheduler.New(tgAPI, reminderRepo, eventRepo, taskRepo, goalRepo, blockRepo, projectRepo, bus)
	go sched.Start(ctx)

	// Create and start bot
	b, err := bot.New(cfg.TelegramToken, db, aiClient, bus)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()
	}()

	log.Println("Starting bot...")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Bot error: %v", err)
	}
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, strings.ToLower(t))
		}
	}
	return tags
}

func tagsOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

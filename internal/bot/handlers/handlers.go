package handlers

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/ai"
	"github.com/mohammedsoliman1619/fpp815/internal/events"
	"github.com/mohammedsoliman1619/fpp815/internal/format"
	"github.com/mohammedsoliman1619/fpp815/internal/repository"
)

type Repositories struct {
	User      *repository.UserRepository
	Task      *repository.TaskRepository
	Event     *repository.EventRepository
	Goal      *repository.GoalRepository
	Reminder  *repository.ReminderRepository
	TimeBlock *repository.TimeBlockRepository
	Project   *repository.ProjectRepository
}

type Handlers struct {
	api   *tgbotapi.BotAPI
	repos *Repositories
	ai    *ai.Client
	bus   *events.Bus
}

func New(api *tgbotapi.BotAPI, repos *Repositories, aiClient *ai.Client, bus *events.Bus) *Handlers {
	return &Handlers{
		api:   api,
		repos: repos,
		ai:    aiClient,
		bus:   bus,
	}
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	// Ensure user exists
	_, err := h.repos.User.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		log.Printf("Failed to get/create user: %v", err)
		return
	}

	switch msg.Command() {
	case "start":
		h.handleStart(ctx, msg)
	case "help":
		h.handleHelp(ctx, msg)
	case "task":
		h.handleTask(ctx, msg)
	case "tasks":
		h.handleTaskList(ctx, msg)
	case "done":
		h.handleTaskDone(ctx, msg)
	case "subtask":
		h.handleSubtask(ctx, msg)
	case "event":
		h.handleEvent(ctx, msg)
	case "events":
		h.handleEventList(ctx, msg)
	case "goal":
		h.handleGoal(ctx, msg)
	case "goals":
		h.handleGoalList(ctx, msg)
	case "remind":
		h.handleReminder(ctx, msg)
	case "reminders":
		h.handleReminderList(ctx, msg)
	case "block":
		h.handleBlock(ctx, msg)
	case "blocks":
		h.handleBlockList(ctx, msg)
	case "today":
		h.handleToday(ctx, msg)
	case "week":
		h.handleWeek(ctx, msg)
	case "conflicts":
		h.handleConflicts(ctx, msg)
	case "rollover":
		h.handleRollover(ctx, msg)
	default:
		h.sendMessage(msg.Chat.ID, "Unknown command, use /help to see what I can do")
	}
}

func (h *Handlers) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	_, err := h.repos.User.GetOrCreate(ctx, msg.From.ID, msg.From.UserName)
	if err != nil {
		log.Printf("Failed to get/create user: %v", err)
		return
	}

	h.handleAIMessage(ctx, msg)
}

func (h *Handlers) sendMessage(chatID int64, text string) {
	parsed := format.ParseMarkdown(text)
	msg := tgbotapi.NewMessage(chatID, parsed.Text)
	msg.Entities = parsed.Entities
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handlers) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	text := fmt.Sprintf(`👋 Hi %s!

I'm your personal planner. I keep your tasks, events, goals, reminders and
time blocks in one timeline.

Try:
• /task Write report | 2025-01-10 14:00
• /today — today's agenda with workload
• /conflicts — overlapping appointments
• or just tell me in plain words what to plan

Use /help for the full command list`, msg.From.FirstName)
	h.sendMessage(msg.Chat.ID, text)
}

func (h *Handlers) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	h.sendMessage(msg.Chat.ID, `**Commands**

Tasks
• /task <title> [| due YYYY-MM-DD HH:MM] — add a task
• /tasks — list open tasks
• /done <id> — complete a task
• /subtask <task-id> <title> — add a subtask

Calendar
• /event <title> | <start> [| <end>] [| daily/weekly/monthly/yearly[:N]] — add an event
• /events — list events
• /block <title> | <start> | <end> — reserve a time block
• /blocks — list this week's blocks

Goals & reminders
• /goal <title> [| target YYYY-MM-DD] — add a goal
• /goals — list goals
• /remind <text> | <YYYY-MM-DD HH:MM> — one-off reminder
• /reminders — list reminders

Planning
• /today — today's timeline and workload
• /week — the next seven days
• /conflicts — overlapping items today
• /rollover — pull overdue tasks to today`)
}

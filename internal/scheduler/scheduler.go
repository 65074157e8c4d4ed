package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mohammedsoliman1619/fpp815/internal/events"
	"github.com/mohammedsoliman1619/fpp815/internal/format"
	"github.com/mohammedsoliman1619/fpp815/internal/recurrence"
	"github.com/mohammedsoliman1619/fpp815/internal/repository"
	"github.com/mohammedsoliman1619/fpp815/internal/rrule"
	"github.com/mohammedsoliman1619/fpp815/internal/timeline"
)

const summaryHour = 7 // morning agenda delivery hour, local time

type Scheduler struct {
	api           *tgbotapi.BotAPI
	reminderRepo  *repository.ReminderRepository
	eventRepo     *repository.EventRepository
	taskRepo      *repository.TaskRepository
	goalRepo      *repository.GoalRepository
	blockRepo     *repository.TimeBlockRepository
	projectRepo   *repository.ProjectRepository
	bus           *events.Bus
	checkInterval time.Duration
	notifyCh      chan struct{}

	lastRollover map[int64]string // userID -> yyyy-mm-dd of last rollover run
	lastSummary  map[int64]string // userID -> yyyy-mm-dd of last morning agenda
}

func New(
	api *tgbotapi.BotAPI,
	reminderRepo *repository.ReminderRepository,
	eventRepo *repository.EventRepository,
	taskRepo *repository.TaskRepository,
	goalRepo *repository.GoalRepository,
	blockRepo *repository.TimeBlockRepository,
	projectRepo *repository.ProjectRepository,
	bus *events.Bus,
) *Scheduler {
	return &Scheduler{
		api:           api,
		reminderRepo:  reminderRepo,
		eventRepo:     eventRepo,
		taskRepo:      taskRepo,
		goalRepo:      goalRepo,
		blockRepo:     blockRepo,
		projectRepo:   projectRepo,
		bus:           bus,
		checkInterval: 1 * time.Minute,
		notifyCh:      make(chan struct{}, 1),
		lastRollover:  make(map[int64]string),
		lastSummary:   make(map[int64]string),
	}
}

// Notify triggers an immediate check. Non-blocking if a check is already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	log.Println("Scheduler started")
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	// Wait a bit for migrations to complete before first check
	select {
	case <-ctx.Done():
		return
	case <-time.After(2 * time.Second):
	}

	s.check(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		case <-s.notifyCh:
			s.check(ctx)
		}
	}
}

func (s *Scheduler) check(ctx context.Context) {
	now := time.Now()
	s.checkReminders(ctx, now)
	s.checkEvents(ctx, now)
	s.checkRollover(ctx, now)
	s.checkMorningAgenda(ctx, now)
}

func (s *Scheduler) checkReminders(ctx context.Context, now time.Time) {
	due, err := s.reminderRepo.GetDue(ctx, now)
	if err != nil {
		log.Printf("Failed to get due reminders: %v", err)
		return
	}

	for _, reminder := range due {
		text := "⏰ **Reminder**\n\n" + reminder.Message
		if reminder.Description != "" {
			text += "\n\n" + reminder.Description
		}
		if reminder.IsRecurring() {
			text += "\n\n🔄 " + rrule.Describe(reminder.Recurrence)
		}

		if !s.send(reminder.UserID, text) {
			continue
		}
		if err := s.reminderRepo.SetNotifiedAt(ctx, reminder.ReminderID, &now); err != nil {
			log.Printf("Failed to mark reminder %d notified: %v", reminder.ReminderID, err)
		}

		// Recurring reminders move to their next occurrence; one-off
		// reminders just stay notified.
		if reminder.IsRecurring() {
			next, err := rrule.Next(reminder.Recurrence, reminder.RemindAt, now)
			if err != nil || next == nil {
				continue
			}
			if err := s.reminderRepo.Reschedule(ctx, reminder.ReminderID, *next); err != nil {
				log.Printf("Failed to reschedule reminder %d: %v", reminder.ReminderID, err)
			}
		}
	}
}

func (s *Scheduler) checkEvents(ctx context.Context, now time.Time) {
	pending, err := s.eventRepo.GetPendingNotifications(ctx)
	if err != nil {
		log.Printf("Failed to get pending event notifications: %v", err)
		return
	}

	for _, event := range pending {
		until := time.Until(event.StartTime)
		text := "📅 **Upcoming event**\n\n**" + event.Title + "**\n🕐 " + event.StartTime.Format("15:04")
		if minutes := int(until.Minutes()); minutes > 0 {
			text += fmt.Sprintf(" (in about %d min)", minutes)
		}
		if event.EndTime != nil {
			text += fmt.Sprintf("\n⏱ %d min", int(event.EndTime.Sub(event.StartTime).Minutes()))
		}
		if event.Description != "" {
			text += "\n\n" + event.Description
		}

		if !s.send(event.UserID, text) {
			continue
		}
		if err := s.eventRepo.SetNotifiedAt(ctx, event.EventID, &now); err != nil {
			log.Printf("Failed to mark event %d notified: %v", event.EventID, err)
		}
	}
}

// checkRollover pulls every user's overdue incomplete tasks forward to today,
// once per calendar day.
func (s *Scheduler) checkRollover(ctx context.Context, now time.Time) {
	day := now.Format("2006-01-02")
	userIDs, err := s.taskRepo.GetAllUserIDs(ctx)
	if err != nil {
		log.Printf("Failed to list users for rollover: %v", err)
		return
	}

	for _, userID := range userIDs {
		if s.lastRollover[userID] == day {
			continue
		}
		s.lastRollover[userID] = day

		tasks, err := s.taskRepo.GetByUserID(ctx, userID, false)
		if err != nil {
			log.Printf("Failed to load tasks for rollover (user %d): %v", userID, err)
			continue
		}

		rolled := 0
		for i, task := range timeline.RolloverStale(tasks, now) {
			if task == tasks[i] {
				continue
			}
			if err := s.taskRepo.Update(ctx, task); err != nil {
				log.Printf("Failed to persist rollover for task %d: %v", task.TaskID, err)
				continue
			}
			s.bus.Publish(ctx, events.Event{
				Kind:     events.TaskRolled,
				UserID:   userID,
				EntityID: task.TaskID,
			})
			rolled++
		}
		if rolled > 0 {
			log.Printf("Rolled %d overdue task(s) for user %d", rolled, userID)
		}
	}
}

func (s *Scheduler) checkMorningAgenda(ctx context.Context, now time.Time) {
	if now.Hour() < summaryHour {
		return
	}
	day := now.Format("2006-01-02")
	userIDs, err := s.taskRepo.GetAllUserIDs(ctx)
	if err != nil {
		return
	}

	for _, userID := range userIDs {
		if s.lastSummary[userID] == day {
			continue
		}
		s.lastSummary[userID] = day

		items, err := s.buildDay(ctx, userID, now)
		if err != nil {
			log.Printf("Failed to build morning agenda for user %d: %v", userID, err)
			continue
		}
		if len(items) == 0 {
			continue
		}
		s.send(userID, format.Agenda("☀️ Good morning", items, startOfDay(now), endOfDay(now)))
	}
}

// buildDay runs the expansion and reconciliation pipeline over one day.
func (s *Scheduler) buildDay(ctx context.Context, userID int64, now time.Time) ([]timeline.Item, error) {
	windowStart, windowEnd := startOfDay(now), endOfDay(now)

	tasks, err := s.taskRepo.GetByUserID(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	candidates, err := s.eventRepo.GetCandidatesForWindow(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.GetByUserID(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	reminders, err := s.reminderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	blocks, err := s.blockRepo.GetByDateRange(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	expanded := recurrence.Expand(candidates, windowStart, windowEnd)
	items := timeline.Build(tasks, expanded, goals, reminders, blocks, projects)

	inWindow := items[:0]
	for _, it := range items {
		if !it.StartTime.Before(windowStart) && !it.StartTime.After(windowEnd) {
			inWindow = append(inWindow, it)
		}
	}
	return inWindow, nil
}

func (s *Scheduler) send(userID int64, text string) bool {
	parsed := format.ParseMarkdown(text)
	msg := tgbotapi.NewMessage(userID, parsed.Text)
	msg.Entities = parsed.Entities
	if _, err := s.api.Send(msg); err != nil {
		log.Printf("Failed to send notification to %d: %v", userID, err)
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// Package events is an explicit in-process event log. Cross-entity side
// effects (completing a task updating goal progress, rollover audit) go
// through here instead of hiding inside store mutations, so each cascade is
// subscribed to explicitly and observable after the fact.
package events

import (
	"context"
	"sync"
	"time"
)

type Kind string

const (
	TaskCompleted Kind = "task.completed"
	TaskRolled    Kind = "task.rolled"
	GoalProgress  Kind = "goal.progress"
)

type Event struct {
	Kind     Kind
	UserID   int64
	EntityID int
	At       time.Time
	Payload  map[string]string
}

type Handler func(ctx context.Context, ev Event)

// Bus dispatches events synchronously to subscribers in registration order
// and appends every published event to an audit log.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
	log      []Event
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

func (b *Bus) Subscribe(kind Kind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], h)
}

func (b *Bus) Publish(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	b.mu.Lock()
	b.log = append(b.log, ev)
	handlers := append([]Handler(nil), b.handlers[ev.Kind]...)
	b.mu.Unlock()

	for _, h := range handlers {
		h(ctx, ev)
	}
}

// Log returns a snapshot of every event published so far, in order.
func (b *Bus) Log() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Event(nil), b.log...)
}

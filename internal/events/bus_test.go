package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDispatchesInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Subscribe(TaskCompleted, func(ctx context.Context, ev Event) {
		order = append(order, "first")
	})
	bus.Subscribe(TaskCompleted, func(ctx context.Context, ev Event) {
		order = append(order, "second")
	})
	bus.Subscribe(TaskRolled, func(ctx context.Context, ev Event) {
		order = append(order, "unrelated")
	})

	bus.Publish(context.Background(), Event{Kind: TaskCompleted, UserID: 1, EntityID: 42})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestBusLogRecordsEverything(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	// Events without subscribers still land in the log.
	bus.Publish(ctx, Event{Kind: TaskCompleted, UserID: 1, EntityID: 7})
	bus.Publish(ctx, Event{Kind: TaskRolled, UserID: 1, EntityID: 8, Payload: map[string]string{"due": "2024-01-05"}})
	bus.Publish(ctx, Event{Kind: GoalProgress, UserID: 2, EntityID: 3})

	log := bus.Log()
	require.Len(t, log, 3)
	assert.Equal(t, TaskCompleted, log[0].Kind)
	assert.Equal(t, TaskRolled, log[1].Kind)
	assert.Equal(t, "2024-01-05", log[1].Payload["due"])
	assert.Equal(t, GoalProgress, log[2].Kind)
	for _, ev := range log {
		assert.False(t, ev.At.IsZero(), "published events get a timestamp")
	}
}

func TestBusLogIsSnapshot(t *testing.T) {
	bus := NewBus()
	bus.Publish(context.Background(), Event{Kind: TaskCompleted, UserID: 1, EntityID: 1})

	snap := bus.Log()
	bus.Publish(context.Background(), Event{Kind: TaskCompleted, UserID: 1, EntityID: 2})

	assert.Len(t, snap, 1)
	assert.Len(t, bus.Log(), 2)
}

func TestBusHandlerCanPublish(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TaskCompleted, func(ctx context.Context, ev Event) {
		bus.Publish(ctx, Event{Kind: GoalProgress, UserID: ev.UserID, EntityID: 99})
	})

	bus.Publish(context.Background(), Event{Kind: TaskCompleted, UserID: 5, EntityID: 1})

	log := bus.Log()
	require.Len(t, log, 2)
	assert.Equal(t, GoalProgress, log[1].Kind)
	assert.Equal(t, int64(5), log[1].UserID)
}

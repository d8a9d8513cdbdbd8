package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []Event
	d.Subscribe(EventStaffCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})

	event := Event{ID: "e1", Type: EventStaffCreated, StaffID: "s1", Timestamp: time.Now()}
	assert.NoError(t, d.Publish(context.Background(), event))
	assert.Len(t, seen, 1)
	assert.Equal(t, "s1", seen[0].StaffID)
}

func TestDispatcher_TypeIsolation(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventStaffDeleted, func(_ context.Context, e Event) error {
		called = true
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventStaffCreated})
	assert.False(t, called)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	secondCalled := false
	d.Subscribe(EventStaffUpdated, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventStaffUpdated, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventStaffUpdated}))
	assert.True(t, secondCalled)
}

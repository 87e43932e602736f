package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventMaintenanceCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventMaintenanceCreated, MaintenanceID: "m1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].MaintenanceID)

	// unrelated event types do not reach the subscriber
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventMaintenanceDeleted}))
	assert.Len(t, got, 1)
}

func TestDispatcherHandlerFailureDoesNotBlockOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventMaintenanceDue, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventMaintenanceDue, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventMaintenanceDue}))
	assert.True(t, called)
}

package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventRequestAccepted, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.RequestID)
		return errors.New("mail relay down")
	})
	d.Subscribe(EventRequestAccepted, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.RequestID)
		return nil
	})
	d.Subscribe(EventRequestCompleted, func(context.Context, Event) error {
		calls = append(calls, "completed")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventRequestAccepted, RequestID: "r1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail relay down")
	assert.Equal(t, []string{"first:r1", "second:r1"}, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventRequestSubmitted}))
}

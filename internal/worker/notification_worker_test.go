package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/repair-tracker/internal/config"
	"github.com/spec-kit/repair-tracker/internal/events"
	"github.com/spec-kit/repair-tracker/internal/service"
)

func TestWorkerLogsRequestEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartNotificationWorker(service.NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "it-desk@example.edu",
		WebhookURL: "https://hooks.example.edu/repairs",
	}))

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventRequestCompleted,
		RequestID: "r1",
		Actor:     events.Actor{UserID: "tech-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("RequestCompleted").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendEmailNotificationStub").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendWebhookNotificationStub").Len())
}

func TestNilServiceIsIgnored(t *testing.T) {
	assert.NotPanics(t, func() { StartNotificationWorker(nil) })
}

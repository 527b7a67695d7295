package worker

import (
	"github.com/spec-kit/repair-tracker/internal/service"
)

// StartNotificationWorker subscribes the notification service to request
// events. Handlers run synchronously on the publishing goroutine.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

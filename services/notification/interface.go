package notification

import (
	"context"

	"smatching/models"
)

// TypePushSend is the asynq task type for one push delivery.
const TypePushSend = "push:send"

// NotificationSink receives alert events from the notice fan-out and
// the scheduled scans. Send must persist the event before returning
// nil; push delivery behind it is best effort.
type NotificationSink interface {
	Send(ctx context.Context, n *models.Notification) error
}

// NotificationService persists alert events and delivers them as FCM
// pushes through the task queue.
type NotificationService interface {
	NotificationSink
	// DeliverPush sends one queued payload to the user's device. Called
	// by the queue worker.
	DeliverPush(ctx context.Context, p models.PushPayload) error
}

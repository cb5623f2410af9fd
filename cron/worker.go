package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"smatching/config"
	"smatching/models"
	"smatching/services/notification"
	"smatching/utils"
)

// PushQueueRedisOpt returns the asynq connection settings for the push
// queue. Client and worker must agree on these.
func PushQueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPushQueueDB,
	}
}

// NewPushQueueClient builds the asynq client the notification service
// enqueues push tasks on.
func NewPushQueueClient() *asynq.Client {
	return asynq.NewClient(PushQueueRedisOpt())
}

// PushWorker consumes queued push tasks and delivers them over FCM.
type PushWorker struct {
	srv   *asynq.Server
	notif notification.NotificationService
}

func NewPushWorker(notifSvc notification.NotificationService) *PushWorker {
	srv := asynq.NewServer(
		PushQueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	return &PushWorker{srv: srv, notif: notifSvc}
}

// Start runs the worker in its own goroutine.
func (w *PushWorker) Start() {
	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypePushSend, w.handlePushTask)

	go func() {
		utils.GetLogger().Sugar().Info("push worker starting")
		if err := w.srv.Run(mux); err != nil {
			utils.GetLogger().Sugar().Fatalw("push worker failed", "error", err)
		}
	}()
}

// Stop drains in-flight tasks and shuts the worker down.
func (w *PushWorker) Stop() {
	w.srv.Shutdown()
}

func (w *PushWorker) handlePushTask(ctx context.Context, task *asynq.Task) error {
	var p models.PushPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		// A malformed payload never becomes deliverable, so do not retry.
		utils.GetLogger().Sugar().Errorw("invalid push payload", "error", err)
		return fmt.Errorf("invalid push payload: %v: %w", err, asynq.SkipRetry)
	}
	return w.notif.DeliverPush(ctx, p)
}

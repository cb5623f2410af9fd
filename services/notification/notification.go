package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	notifRepo "smatching/database/repository/notification"
	userRepo "smatching/database/repository/user"
	"smatching/models"
	"smatching/utils"
)

// DefaultNotificationService is the production implementation: every
// event lands in the notification log, then a push task is enqueued.
type DefaultNotificationService struct {
	Repo     notifRepo.NotificationRepository
	UserRepo userRepo.UserRepository
	Queue    *asynq.Client
}

func NewDefaultNotificationService(
	repo notifRepo.NotificationRepository,
	users userRepo.UserRepository,
	queue *asynq.Client,
) *DefaultNotificationService {
	return &DefaultNotificationService{Repo: repo, UserRepo: users, Queue: queue}
}

// Send persists the notification and queues its push. A persistence
// failure is returned to the caller; a queueing failure is only logged,
// the in-app record already exists.
func (s *DefaultNotificationService) Send(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if err := s.Repo.Create(n); err != nil {
		return utils.StorageErr("failed to store notification", err)
	}

	if s.Queue == nil {
		return nil
	}

	payload := models.PushPayload{
		UserID:   n.UserID,
		NoticeID: n.NoticeID,
		Type:     string(n.Type),
		Title:    pushTitle(n.Type),
		Body:     n.Message,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}
	if _, err := s.Queue.EnqueueContext(ctx, asynq.NewTask(TypePushSend, raw)); err != nil {
		utils.GetLogger().Sugar().Errorw("failed to enqueue push",
			"userId", n.UserID, "noticeId", n.NoticeID, "error", err)
	}
	return nil
}

// DeliverPush resolves the user's device token and sends the FCM
// message. A user without a token is skipped without error, so the
// queue does not retry an undeliverable task.
func (s *DefaultNotificationService) DeliverPush(ctx context.Context, p models.PushPayload) error {
	usr, err := s.UserRepo.GetByID(p.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", p.UserID, err)
	}
	if usr == nil || usr.FCMToken == "" {
		utils.GetLogger().Sugar().Infow("skipping push, no device token", "userId", p.UserID)
		return nil
	}

	msg := &messaging.Message{
		Token: usr.FCMToken,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
		Data: map[string]string{
			"noticeId": p.NoticeID,
			"type":     p.Type,
		},
	}

	if utils.FCMClient == nil {
		utils.GetLogger().Sugar().Warnw("skipping push, FCM not configured", "userId", p.UserID)
		return nil
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send push to user %s: %w", p.UserID, err)
	}
	return nil
}

func pushTitle(t models.AlertType) string {
	switch t {
	case models.AlertThreeDaysLeft:
		return "A scrapped notice closes in three days"
	default:
		return "A new notice matches your condition"
	}
}

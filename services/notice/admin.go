package notice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	condRepo "smatching/database/repository/condition"
	noticeRepo "smatching/database/repository/notice"
	"smatching/models"
	"smatching/services/notification"
	"smatching/utils"
)

const dateLayout = "2006-01-02"

// DefaultAdminNoticeService implements AdminNoticeService. Publishing a
// notice triggers the new-notice fan-out: one alert per user whose
// alert-enabled condition the notice matches.
type DefaultAdminNoticeService struct {
	NoticeRepo noticeRepo.NoticeRepository
	CondRepo   condRepo.ConditionRepository
	Sink       notification.NotificationSink
}

// AddNotice publishes a notice. The fan-out runs after the insert; a
// delivery failure for one user is logged and the rest still go out.
func (s *DefaultAdminNoticeService) AddNotice(ctx context.Context, input models.NoticeInput) (*models.Notice, error) {
	n := input.Encode()

	end, err := time.ParseInLocation(dateLayout, input.EndDate, time.UTC)
	if err != nil {
		return nil, utils.PreconditionErr(fmt.Sprintf("invalid end date %q", input.EndDate))
	}
	n.EndDate = end
	if input.StartDate != "" {
		start, err := time.ParseInLocation(dateLayout, input.StartDate, time.UTC)
		if err != nil {
			return nil, utils.PreconditionErr(fmt.Sprintf("invalid start date %q", input.StartDate))
		}
		n.StartDate = start
	}

	n.ID = uuid.NewString()
	n.RegDate = time.Now().UTC()
	n.Valid = true

	if err := s.NoticeRepo.Create(&n); err != nil {
		return nil, utils.StorageErr("failed to create notice", err)
	}

	if !n.NotFit {
		s.fanOut(ctx, &n)
	}
	return &n, nil
}

// fanOut emits one new-notice alert per matching alert-enabled user.
func (s *DefaultAdminNoticeService) fanOut(ctx context.Context, n *models.Notice) {
	log := utils.GetLogger().Sugar()

	userIDs, err := s.CondRepo.ListAlertUsers(n)
	if err != nil {
		log.Errorw("new-notice fan-out aborted", "noticeId", n.ID, "error", err)
		return
	}

	for _, uid := range userIDs {
		notif := &models.Notification{
			UserID:   uid,
			NoticeID: n.ID,
			Type:     models.AlertNewNotice,
			Message:  n.Title,
		}
		if err := s.Sink.Send(ctx, notif); err != nil {
			log.Errorw("new-notice alert failed", "noticeId", n.ID, "userId", uid, "error", err)
		}
	}
	log.Infow("new-notice fan-out done", "noticeId", n.ID, "recipients", len(userIDs))
}

// InvalidateNotice takes a notice out of circulation.
func (s *DefaultAdminNoticeService) InvalidateNotice(noticeID string) error {
	if err := s.NoticeRepo.Invalidate(noticeID); err != nil {
		if errors.Is(err, noticeRepo.ErrNotFound) {
			return utils.NotFoundErr("notice not found")
		}
		return utils.StorageErr("failed to invalidate notice", err)
	}
	return nil
}

// ListNotices pages through valid notices with full fields.
func (s *DefaultAdminNoticeService) ListNotices(offset, limit int) ([]models.Notice, error) {
	notices, err := s.NoticeRepo.ListAll(offset, limit)
	if err != nil {
		return nil, utils.StorageErr("failed to list notices", err)
	}
	return notices, nil
}

// GetNotice loads one notice regardless of validity.
func (s *DefaultAdminNoticeService) GetNotice(noticeID string) (*models.Notice, error) {
	n, err := s.NoticeRepo.GetByID(noticeID)
	if err != nil {
		return nil, utils.StorageErr("failed to load notice", err)
	}
	if n == nil {
		return nil, utils.NotFoundErr("notice not found")
	}
	return n, nil
}

package notice

import (
	"context"
	"time"

	noticeRepo "smatching/database/repository/notice"
	scrapRepo "smatching/database/repository/scrap"
	"smatching/models"
	"smatching/services/notification"
	"smatching/utils"
)

// daysLeftAlertThreshold is how many whole days before a notice's end
// date the closing-soon alert fires.
const daysLeftAlertThreshold = 3

// DefaultScanService implements the scheduled sweeps: expiring stale
// notices and warning scrapers of imminent deadlines.
type DefaultScanService struct {
	NoticeRepo noticeRepo.NoticeRepository
	ScrapRepo  scrapRepo.ScrapRepository
	Sink       notification.NotificationSink
}

// ScanExpiredNotices invalidates every valid notice whose end date lies
// before today. Failures on individual notices are logged and skipped,
// so one bad record cannot stall the sweep; the next run picks it up
// again.
func (s *DefaultScanService) ScanExpiredNotices(ctx context.Context, now time.Time) ([]string, error) {
	log := utils.GetLogger().Sugar()

	ids, err := s.NoticeRepo.ListExpirable(now)
	if err != nil {
		return nil, utils.StorageErr("failed to list expirable notices", err)
	}

	expired := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return expired, err
		}
		if err := s.NoticeRepo.Invalidate(id); err != nil {
			log.Errorw("failed to expire notice", "noticeId", id, "error", err)
			continue
		}
		expired = append(expired, id)
	}

	log.Infow("expiry scan done", "expired", len(expired), "candidates", len(ids))
	return expired, nil
}

// ScanThreeDaysLeft finds every valid notice closing in exactly three
// days and alerts each user who scraped it. Each run re-derives its
// recipients from the current bookmark sets.
func (s *DefaultScanService) ScanThreeDaysLeft(ctx context.Context, now time.Time) (int, error) {
	log := utils.GetLogger().Sugar()

	ids, err := s.NoticeRepo.ListWithDaysLeft(daysLeftAlertThreshold, now)
	if err != nil {
		return 0, utils.StorageErr("failed to list closing notices", err)
	}

	sent := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		n, err := s.NoticeRepo.GetByID(id)
		if err != nil || n == nil {
			log.Errorw("failed to load closing notice", "noticeId", id, "error", err)
			continue
		}

		scrapers, err := s.ScrapRepo.ListScrapers(id)
		if err != nil {
			log.Errorw("failed to list scrapers", "noticeId", id, "error", err)
			continue
		}

		for _, uid := range scrapers {
			notif := &models.Notification{
				UserID:   uid,
				NoticeID: n.ID,
				Type:     models.AlertThreeDaysLeft,
				Message:  n.Title,
			}
			if err := s.Sink.Send(ctx, notif); err != nil {
				log.Errorw("closing-soon alert failed", "noticeId", id, "userId", uid, "error", err)
				continue
			}
			sent++
		}
	}

	log.Infow("closing-soon scan done", "notices", len(ids), "alerts", sent)
	return sent, nil
}

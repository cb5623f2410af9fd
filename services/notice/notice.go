package notice

import (
	"time"

	noticeRepo "smatching/database/repository/notice"
	scrapRepo "smatching/database/repository/scrap"
	"smatching/models"
	"smatching/services/matching"
	"smatching/utils"
)

// DefaultNoticeService implements NoticeService on top of the stores
// and the match engine.
type DefaultNoticeService struct {
	NoticeRepo noticeRepo.NoticeRepository
	ScrapRepo  scrapRepo.ScrapRepository
	Matcher    matching.MatchService
}

// ListAll pages through every valid notice, newest-registered first.
func (s *DefaultNoticeService) ListAll(userID string, offset, limit int) ([]models.NoticeSummary, error) {
	notices, err := s.NoticeRepo.ListAll(offset, limit)
	if err != nil {
		return nil, utils.StorageErr("failed to list notices", err)
	}
	return s.summarize(userID, notices)
}

// CountAll reports the number of valid notices.
func (s *DefaultNoticeService) CountAll() (int, error) {
	cnt, err := s.NoticeRepo.CountAll()
	if err != nil {
		return 0, utils.StorageErr("failed to count notices", err)
	}
	return cnt, nil
}

// ListForCondition pages through the notices matching one of the
// user's conditions.
func (s *DefaultNoticeService) ListForCondition(userID, conditionID string, offset, limit int) ([]models.NoticeSummary, error) {
	notices, err := s.Matcher.ListForCondition(conditionID, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.summarize(userID, notices)
}

// ListScraped pages through the notices the user has bookmarked. The
// bookmark set is resolved first, then sliced against the notice store
// so invalidated notices drop out.
func (s *DefaultNoticeService) ListScraped(userID string, offset, limit int) ([]models.NoticeSummary, error) {
	ids, err := s.ScrapRepo.ListByUser(userID)
	if err != nil {
		return nil, utils.StorageErr("failed to list bookmarks", err)
	}
	if len(ids) == 0 {
		return []models.NoticeSummary{}, nil
	}

	notices, err := s.NoticeRepo.ListByIDs(ids, offset, limit)
	if err != nil {
		return nil, utils.StorageErr("failed to list bookmarked notices", err)
	}

	now := time.Now().UTC()
	out := make([]models.NoticeSummary, 0, len(notices))
	for _, n := range notices {
		out = append(out, n.Summary(now, true))
	}
	return out, nil
}

// GetDetail loads one notice for display. The read counter bump is best
// effort: a failed increment is logged and the page still renders.
func (s *DefaultNoticeService) GetDetail(userID, noticeID string) (*NoticeDetail, error) {
	n, err := s.NoticeRepo.GetByID(noticeID)
	if err != nil {
		return nil, utils.StorageErr("failed to load notice", err)
	}
	if n == nil {
		return nil, utils.NotFoundErr("notice not found")
	}

	if err := s.NoticeRepo.IncrementReadCount(noticeID); err != nil {
		utils.GetLogger().Sugar().Warnw("failed to bump read count",
			"noticeId", noticeID, "error", err)
	} else {
		n.ReadCount++
	}

	scraped, err := s.ScrapRepo.IsScraped(userID, noticeID)
	if err != nil {
		return nil, utils.StorageErr("failed to check bookmark", err)
	}

	return &NoticeDetail{
		Notice:  *n,
		DDay:    n.DaysLeft(time.Now().UTC()),
		Scraped: scraped,
	}, nil
}

// ToggleScrap flips the user's bookmark on a notice.
func (s *DefaultNoticeService) ToggleScrap(userID, noticeID string) (bool, error) {
	n, err := s.NoticeRepo.GetByID(noticeID)
	if err != nil {
		return false, utils.StorageErr("failed to load notice", err)
	}
	if n == nil {
		return false, utils.NotFoundErr("notice not found")
	}

	scraped, err := s.ScrapRepo.IsScraped(userID, noticeID)
	if err != nil {
		return false, utils.StorageErr("failed to check bookmark", err)
	}

	if scraped {
		if err := s.ScrapRepo.Delete(userID, noticeID); err != nil {
			return false, utils.StorageErr("failed to remove bookmark", err)
		}
		return false, nil
	}
	if err := s.ScrapRepo.Insert(userID, noticeID); err != nil {
		return false, utils.StorageErr("failed to add bookmark", err)
	}
	return true, nil
}

// IsScraped reports whether the user has bookmarked the notice.
func (s *DefaultNoticeService) IsScraped(userID, noticeID string) (bool, error) {
	scraped, err := s.ScrapRepo.IsScraped(userID, noticeID)
	if err != nil {
		return false, utils.StorageErr("failed to check bookmark", err)
	}
	return scraped, nil
}

func (s *DefaultNoticeService) summarize(userID string, notices []models.Notice) ([]models.NoticeSummary, error) {
	now := time.Now().UTC()
	out := make([]models.NoticeSummary, 0, len(notices))
	for _, n := range notices {
		scraped, err := s.ScrapRepo.IsScraped(userID, n.ID)
		if err != nil {
			return nil, utils.StorageErr("failed to check bookmark", err)
		}
		out = append(out, n.Summary(now, scraped))
	}
	return out, nil
}

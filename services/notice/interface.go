package notice

import (
	"context"
	"time"

	"smatching/models"
)

// NoticeDetail is the full-page view of one notice for a signed-in
// user.
type NoticeDetail struct {
	models.Notice
	DDay    int  `json:"dday"`
	Scraped bool `json:"scraped"`
}

// NoticeService serves the user-facing notice screens.
type NoticeService interface {
	// ListAll pages through every valid notice, newest-registered first.
	ListAll(userID string, offset, limit int) ([]models.NoticeSummary, error)
	// CountAll reports the number of valid notices.
	CountAll() (int, error)
	// ListForCondition pages through the notices matching one of the
	// user's conditions.
	ListForCondition(userID, conditionID string, offset, limit int) ([]models.NoticeSummary, error)
	// ListScraped pages through the notices the user has bookmarked.
	ListScraped(userID string, offset, limit int) ([]models.NoticeSummary, error)
	// GetDetail loads one notice and bumps its view counter.
	GetDetail(userID, noticeID string) (*NoticeDetail, error)
	// ToggleScrap flips the user's bookmark on a notice and returns the
	// new state.
	ToggleScrap(userID, noticeID string) (bool, error)
	// IsScraped reports whether the user has bookmarked the notice.
	IsScraped(userID, noticeID string) (bool, error)
}

// AdminNoticeService covers the publishing side: creating notices,
// taking them down, and inspecting the corpus.
type AdminNoticeService interface {
	// AddNotice publishes a notice and fans out new-notice alerts to
	// every user whose alert-enabled condition it matches.
	AddNotice(ctx context.Context, input models.NoticeInput) (*models.Notice, error)
	// InvalidateNotice takes a notice out of circulation.
	InvalidateNotice(noticeID string) error
	// ListNotices pages through valid notices with full fields.
	ListNotices(offset, limit int) ([]models.Notice, error)
	// GetNotice loads one notice regardless of validity.
	GetNotice(noticeID string) (*models.Notice, error)
}

// ScanService runs the scheduled sweeps over the notice corpus.
type ScanService interface {
	// ScanExpiredNotices invalidates every notice whose end date has
	// passed and returns the affected ids. Running it twice on the same
	// day changes nothing the second time.
	ScanExpiredNotices(ctx context.Context, now time.Time) ([]string, error)
	// ScanThreeDaysLeft alerts every scraper of a notice that closes in
	// exactly three days. Returns the number of alerts emitted.
	ScanThreeDaysLeft(ctx context.Context, now time.Time) (int, error)
}

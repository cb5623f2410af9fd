package noticeRepo

import (
	"errors"
	"time"

	"smatching/models"
)

// ErrNotFound is returned by write operations whose target notice does
// not exist.
var ErrNotFound = errors.New("notice not found")

// NoticeRepository defines data access for published notices.
type NoticeRepository interface {
	// GetByID retrieves a notice by its id, or nil when absent.
	GetByID(noticeID string) (*models.Notice, error)
	// Create inserts a new notice record.
	Create(n *models.Notice) error
	// CountAll reports the number of valid notices.
	CountAll() (int, error)
	// ListAll retrieves valid notices newest-registered first.
	ListAll(offset, limit int) ([]models.Notice, error)
	// CountMatching reports how many valid, fit notices match the condition.
	CountMatching(cond *models.Condition) (int, error)
	// ListMatching retrieves matching notices newest-registered first.
	ListMatching(cond *models.Condition, offset, limit int) ([]models.Notice, error)
	// ListByIDs retrieves notices for the given ids, newest-registered first.
	ListByIDs(ids []string, offset, limit int) ([]models.Notice, error)
	// Invalidate marks a notice inactive.
	Invalidate(noticeID string) error
	// ListExpirable returns ids of valid notices whose end date is
	// strictly before the current date.
	ListExpirable(now time.Time) ([]string, error)
	// ListWithDaysLeft returns ids of valid notices with exactly the
	// given number of whole days until their end date.
	ListWithDaysLeft(days int, now time.Time) ([]string, error)
	// IncrementReadCount bumps a notice's view counter.
	IncrementReadCount(noticeID string) error
}

package condRepo

import (
	"errors"

	"smatching/models"
)

// ErrNotFound is returned by write operations whose target condition
// does not exist or belongs to another user.
var ErrNotFound = errors.New("condition not found")

// ConditionRepository defines data access for saved matching conditions.
type ConditionRepository interface {
	// GetByID retrieves a condition by its id, or nil when absent.
	GetByID(conditionID string) (*models.Condition, error)
	// ListByUser retrieves a user's conditions in creation order.
	ListByUser(userID string) ([]models.Condition, error)
	// CountByUser reports how many conditions a user owns.
	CountByUser(userID string) (int, error)
	// Create inserts a new condition record.
	Create(cond *models.Condition) error
	// Update replaces the editable fields of a user's condition.
	Update(userID, conditionID string, cond *models.Condition) error
	// Delete removes a user's condition.
	Delete(userID, conditionID string) error
	// SetAlert flips the alert flag on one condition of the user.
	SetAlert(userID, conditionID string, on bool) error
	// SetAlertForAllOfUser flips the alert flag on every condition of the user.
	SetAlertForAllOfUser(userID string, on bool) error
	// CountAlertOn reports how many of the user's conditions have the alert flag on.
	CountAlertOn(userID string) (int, error)
	// ListAlertUsers returns the distinct owners of alert-enabled
	// conditions that match the given notice.
	ListAlertUsers(notice *models.Notice) ([]string, error)
}

package condition

import "smatching/models"

// MaxConditionsPerUser caps how many saved conditions one account may hold.
const MaxConditionsPerUser = 2

// ConditionService manages a user's saved matching conditions.
type ConditionService interface {
	// CreateCondition validates and stores a new condition for the user,
	// enabling its alert when it is the user's only alert candidate.
	CreateCondition(userID string, input models.ConditionInput) (*models.Condition, error)
	// GetCondition loads one condition as selectable-option detail.
	GetCondition(userID, conditionID string) (*models.ConditionDetail, error)
	// UpdateCondition replaces the option masks and name of an existing
	// condition.
	UpdateCondition(userID, conditionID string, input models.ConditionInput) error
	// DeleteCondition removes a condition the user owns.
	DeleteCondition(userID, conditionID string) error
	// GetUserConditions returns the user's nickname plus one summary per
	// stored condition, each carrying its matching-notice count.
	GetUserConditions(userID string) (*models.UserConditions, error)
}

package alert

import "smatching/models"

// CondAlertResult is the outcome of a user-level bulk toggle.
// HasCondition is false when the user has no conditions configured, in
// which case nothing changed and the toggle is a no-op rather than an
// error.
type CondAlertResult struct {
	Enabled      bool `json:"enabled"`
	HasCondition bool `json:"hasCondition"`
}

// AlertService maintains the alert flags: at most one of a user's
// conditions may have its alert on at any time, and the user-scoped
// talk alert toggles independently of that rule.
type AlertService interface {
	// GetSettings returns the aggregate alert state for the settings screen.
	GetSettings(userID string) (models.AlertSettings, error)
	// EnsureDefaultAlert turns the alert on for the given condition if
	// none of the user's conditions currently has it on. Used right
	// after creation so a user's first condition is always alert-active.
	EnsureDefaultAlert(userID, conditionID string) error
	// ToggleConditionAlert flips the alert of one condition, turning
	// every other condition of the user off first. Returns the new state.
	ToggleConditionAlert(userID, conditionID string) (bool, error)
	// ToggleUserCondAlert flips the aggregate state: any alert on means
	// all go off; none on means the first stored condition goes on.
	ToggleUserCondAlert(userID string) (CondAlertResult, error)
	// ToggleTalkAlert flips the user-scoped talk alert and returns the
	// new state.
	ToggleTalkAlert(userID string) (bool, error)
}

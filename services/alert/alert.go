package alert

import (
	"errors"

	condRepo "smatching/database/repository/condition"
	userRepo "smatching/database/repository/user"
	"smatching/models"
	"smatching/utils"
)

// DefaultAlertService implements AlertService on top of the stores.
type DefaultAlertService struct {
	CondRepo condRepo.ConditionRepository
	UserRepo userRepo.UserRepository

	locks *userLocks
}

// NewDefaultAlertService wires an alert service with per-user locking.
func NewDefaultAlertService(conds condRepo.ConditionRepository, users userRepo.UserRepository) *DefaultAlertService {
	return &DefaultAlertService{
		CondRepo: conds,
		UserRepo: users,
		locks:    newUserLocks(),
	}
}

// GetSettings returns the aggregate alert state for the settings screen.
func (s *DefaultAlertService) GetSettings(userID string) (models.AlertSettings, error) {
	usr, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return models.AlertSettings{}, utils.StorageErr("failed to load user", err)
	}
	if usr == nil {
		return models.AlertSettings{}, utils.NotFoundErr("user not found")
	}

	onCnt, err := s.CondRepo.CountAlertOn(userID)
	if err != nil {
		return models.AlertSettings{}, utils.StorageErr("failed to count alert conditions", err)
	}

	return models.AlertSettings{CondAlert: onCnt > 0, TalkAlert: usr.TalkAlert}, nil
}

// EnsureDefaultAlert turns the alert on for the given condition if none
// of the user's conditions currently has it on.
func (s *DefaultAlertService) EnsureDefaultAlert(userID, conditionID string) error {
	unlock := s.locks.acquire(userID)
	defer unlock()

	onCnt, err := s.CondRepo.CountAlertOn(userID)
	if err != nil {
		return utils.StorageErr("failed to count alert conditions", err)
	}
	if onCnt > 0 {
		return nil
	}

	if err := s.CondRepo.SetAlert(userID, conditionID, true); err != nil {
		if errors.Is(err, condRepo.ErrNotFound) {
			return utils.NotFoundErr("condition not found")
		}
		return utils.StorageErr("failed to enable alert", err)
	}
	return nil
}

// ToggleConditionAlert flips the alert of one condition. Enabling a
// condition first turns every condition of the user off, so the
// exclusivity rule holds even if a stray second flag slipped in.
func (s *DefaultAlertService) ToggleConditionAlert(userID, conditionID string) (bool, error) {
	unlock := s.locks.acquire(userID)
	defer unlock()

	cond, err := s.CondRepo.GetByID(conditionID)
	if err != nil {
		return false, utils.StorageErr("failed to load condition", err)
	}
	if cond == nil || cond.UserID != userID {
		return false, utils.NotFoundErr("condition not found")
	}

	if cond.AlertOn {
		if err := s.CondRepo.SetAlert(userID, conditionID, false); err != nil {
			return false, utils.StorageErr("failed to disable alert", err)
		}
		return false, nil
	}

	if err := s.CondRepo.SetAlertForAllOfUser(userID, false); err != nil {
		return false, utils.StorageErr("failed to reset alerts", err)
	}
	if err := s.CondRepo.SetAlert(userID, conditionID, true); err != nil {
		return false, utils.StorageErr("failed to enable alert", err)
	}
	return true, nil
}

// ToggleUserCondAlert flips the aggregate state across the user's
// conditions.
func (s *DefaultAlertService) ToggleUserCondAlert(userID string) (CondAlertResult, error) {
	unlock := s.locks.acquire(userID)
	defer unlock()

	onCnt, err := s.CondRepo.CountAlertOn(userID)
	if err != nil {
		return CondAlertResult{}, utils.StorageErr("failed to count alert conditions", err)
	}

	if onCnt > 0 {
		if err := s.CondRepo.SetAlertForAllOfUser(userID, false); err != nil {
			return CondAlertResult{}, utils.StorageErr("failed to disable alerts", err)
		}
		return CondAlertResult{Enabled: false, HasCondition: true}, nil
	}

	conds, err := s.CondRepo.ListByUser(userID)
	if err != nil {
		return CondAlertResult{}, utils.StorageErr("failed to list conditions", err)
	}
	if len(conds) == 0 {
		// No-op: the user has nothing to alert on.
		return CondAlertResult{Enabled: false, HasCondition: false}, nil
	}

	if err := s.CondRepo.SetAlert(userID, conds[0].ID, true); err != nil {
		return CondAlertResult{}, utils.StorageErr("failed to enable alert", err)
	}
	return CondAlertResult{Enabled: true, HasCondition: true}, nil
}

// ToggleTalkAlert flips the user-scoped talk alert.
func (s *DefaultAlertService) ToggleTalkAlert(userID string) (bool, error) {
	usr, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return false, utils.StorageErr("failed to load user", err)
	}
	if usr == nil {
		return false, utils.NotFoundErr("user not found")
	}

	next := !usr.TalkAlert
	if err := s.UserRepo.SetTalkAlert(userID, next); err != nil {
		return false, utils.StorageErr("failed to update talk alert", err)
	}
	return next, nil
}

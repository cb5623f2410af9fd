package condition

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	condRepo "smatching/database/repository/condition"
	userRepo "smatching/database/repository/user"
	"smatching/models"
	"smatching/services/alert"
	"smatching/services/matching"
	"smatching/utils"
)

// DefaultConditionService implements ConditionService on top of the
// stores, the match engine, and the alert rules.
type DefaultConditionService struct {
	CondRepo condRepo.ConditionRepository
	UserRepo userRepo.UserRepository
	Matcher  matching.MatchService
	Alerts   alert.AlertService
}

// CreateCondition validates and stores a new condition. The first
// condition a user creates, or the first created while none carries the
// alert, becomes the alert-active one.
func (s *DefaultConditionService) CreateCondition(userID string, input models.ConditionInput) (*models.Condition, error) {
	cond := input.Encode()
	if err := validateMasks(&cond); err != nil {
		return nil, err
	}

	cnt, err := s.CondRepo.CountByUser(userID)
	if err != nil {
		return nil, utils.StorageErr("failed to count conditions", err)
	}
	if cnt >= MaxConditionsPerUser {
		return nil, utils.InvalidStateErr(fmt.Sprintf("condition limit of %d reached", MaxConditionsPerUser))
	}

	now := time.Now().UTC()
	cond.ID = uuid.NewString()
	cond.UserID = userID
	cond.CreatedAt = now
	cond.UpdatedAt = now

	if err := s.CondRepo.Create(&cond); err != nil {
		return nil, utils.StorageErr("failed to create condition", err)
	}

	if err := s.Alerts.EnsureDefaultAlert(userID, cond.ID); err != nil {
		// Roll back so a half-created condition never lingers without
		// its alert default applied.
		if delErr := s.CondRepo.Delete(userID, cond.ID); delErr != nil {
			utils.GetLogger().Sugar().Errorw("rollback of condition failed",
				"conditionId", cond.ID, "error", delErr)
		}
		return nil, err
	}

	created, err := s.CondRepo.GetByID(cond.ID)
	if err != nil || created == nil {
		// The insert succeeded, so serve the local copy.
		return &cond, nil
	}
	return created, nil
}

// GetCondition loads one condition the user owns as decoded detail.
func (s *DefaultConditionService) GetCondition(userID, conditionID string) (*models.ConditionDetail, error) {
	cond, err := s.ownedCondition(userID, conditionID)
	if err != nil {
		return nil, err
	}
	detail := cond.Detail()
	return &detail, nil
}

// UpdateCondition replaces the name and option masks of an existing
// condition. The alert flag is untouched.
func (s *DefaultConditionService) UpdateCondition(userID, conditionID string, input models.ConditionInput) error {
	cond := input.Encode()
	if err := validateMasks(&cond); err != nil {
		return err
	}
	cond.UpdatedAt = time.Now().UTC()

	if err := s.CondRepo.Update(userID, conditionID, &cond); err != nil {
		if errors.Is(err, condRepo.ErrNotFound) {
			return utils.NotFoundErr("condition not found")
		}
		return utils.StorageErr("failed to update condition", err)
	}
	return nil
}

// DeleteCondition removes a condition the user owns.
func (s *DefaultConditionService) DeleteCondition(userID, conditionID string) error {
	if err := s.CondRepo.Delete(userID, conditionID); err != nil {
		if errors.Is(err, condRepo.ErrNotFound) {
			return utils.NotFoundErr("condition not found")
		}
		return utils.StorageErr("failed to delete condition", err)
	}
	return nil
}

// GetUserConditions builds the overview screen payload: nickname plus a
// summary with a live matching-notice count per condition.
func (s *DefaultConditionService) GetUserConditions(userID string) (*models.UserConditions, error) {
	usr, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, utils.StorageErr("failed to load user", err)
	}
	if usr == nil {
		return nil, utils.NotFoundErr("user not found")
	}

	conds, err := s.CondRepo.ListByUser(userID)
	if err != nil {
		return nil, utils.StorageErr("failed to list conditions", err)
	}

	summaries := make([]models.ConditionSummary, 0, len(conds))
	for _, c := range conds {
		cnt, err := s.Matcher.CountForCondition(c.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.ConditionSummary{
			ID:        c.ID,
			Name:      c.Name,
			AlertOn:   c.AlertOn,
			NoticeCnt: cnt,
		})
	}

	return &models.UserConditions{Nickname: usr.Nickname, Conditions: summaries}, nil
}

func (s *DefaultConditionService) ownedCondition(userID, conditionID string) (*models.Condition, error) {
	cond, err := s.CondRepo.GetByID(conditionID)
	if err != nil {
		return nil, utils.StorageErr("failed to load condition", err)
	}
	if cond == nil || cond.UserID != userID {
		return nil, utils.NotFoundErr("condition not found")
	}
	return cond, nil
}

// validateMasks rejects a condition with any empty option field. A
// condition must select at least one option per field, otherwise it
// could never match a notice that declares options there.
func validateMasks(cond *models.Condition) error {
	fields := []struct {
		name string
		mask int
	}{
		{"location", cond.Location},
		{"age", cond.Age},
		{"period", cond.Period},
		{"businessType", cond.BusinessType},
		{"category", cond.Category},
		{"field", cond.Field},
		{"advantage", cond.Advantage},
	}
	for _, f := range fields {
		if f.mask == 0 {
			return utils.PreconditionErr(fmt.Sprintf("no %s option selected", f.name))
		}
	}
	return nil
}

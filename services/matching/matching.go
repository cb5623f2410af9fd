package matching

import (
	condRepo "smatching/database/repository/condition"
	noticeRepo "smatching/database/repository/notice"
	"smatching/models"
	"smatching/utils"
)

// Matches reports whether the notice satisfies the condition: every one
// of the seven option fields must overlap, and the notice must be valid
// and not flagged out-of-scope. A zero mask on the notice side means
// the notice applies to every option of that field.
func Matches(cond *models.Condition, notice *models.Notice) bool {
	if notice.NotFit || !notice.Valid {
		return false
	}
	pairs := [][2]int{
		{cond.Location, notice.Location},
		{cond.Age, notice.Age},
		{cond.Period, notice.Period},
		{cond.BusinessType, notice.BusinessType},
		{cond.Category, notice.Category},
		{cond.Field, notice.Field},
		{cond.Advantage, notice.Advantage},
	}
	for _, p := range pairs {
		if !fieldMatches(p[0], p[1]) {
			return false
		}
	}
	return true
}

// fieldMatches applies the per-field rule: the condition accepts any of
// the options the notice declares, or the notice declares none and so
// applies to all.
func fieldMatches(condMask, noticeMask int) bool {
	return noticeMask == 0 || condMask&noticeMask != 0
}

// DefaultMatchService implements MatchService on top of the stores.
type DefaultMatchService struct {
	CondRepo   condRepo.ConditionRepository
	NoticeRepo noticeRepo.NoticeRepository
}

// CountForCondition reports how many valid, fit notices match the condition.
func (s *DefaultMatchService) CountForCondition(conditionID string) (int, error) {
	cond, err := s.CondRepo.GetByID(conditionID)
	if err != nil {
		return 0, utils.StorageErr("failed to load condition", err)
	}
	if cond == nil {
		return 0, utils.NotFoundErr("condition not found")
	}

	cnt, err := s.NoticeRepo.CountMatching(cond)
	if err != nil {
		return 0, utils.StorageErr("failed to count matching notices", err)
	}
	return cnt, nil
}

// ListForCondition retrieves matching notices newest-registered first.
func (s *DefaultMatchService) ListForCondition(conditionID string, offset, limit int) ([]models.Notice, error) {
	cond, err := s.CondRepo.GetByID(conditionID)
	if err != nil {
		return nil, utils.StorageErr("failed to load condition", err)
	}
	if cond == nil {
		return nil, utils.NotFoundErr("condition not found")
	}

	notices, err := s.NoticeRepo.ListMatching(cond, offset, limit)
	if err != nil {
		return nil, utils.StorageErr("failed to list matching notices", err)
	}
	return notices, nil
}

package matching

import "smatching/models"

// MatchService answers which notices satisfy a saved condition.
type MatchService interface {
	// CountForCondition reports how many valid, fit notices match the
	// condition. Zero is a valid result, distinct from an unknown id.
	CountForCondition(conditionID string) (int, error)
	// ListForCondition retrieves matching notices newest-registered
	// first, paginated by offset/limit.
	ListForCondition(conditionID string, offset, limit int) ([]models.Notice, error)
}

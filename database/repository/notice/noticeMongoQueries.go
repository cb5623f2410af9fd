package noticeRepo

import (
	"fmt"
	"time"

	"smatching/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fitFilter builds the Mongo filter for "notice matches condition": all
// seven fields overlap bitwise or carry the notice-side zero wildcard,
// and the notice is valid and not flagged out-of-scope.
func fitFilter(cond *models.Condition) bson.M {
	and := []bson.M{
		{"valid": true},
		{"notFit": false},
	}
	fields := []struct {
		key  string
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
		and = append(and, bson.M{"$or": []bson.M{
			{f.key: 0},
			{f.key: bson.M{"$bitsAnySet": f.mask}},
		}})
	}
	return bson.M{"$and": and}
}

// CountMatching reports how many valid, fit notices match the condition.
func (r *MongoNoticeRepo) CountMatching(cond *models.Condition) (int, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, fitFilter(cond))
	if err != nil {
		return 0, fmt.Errorf("failed to count matching notices for condition %s: %w", cond.ID, err)
	}
	return int(n), nil
}

// ListMatching retrieves matching notices newest-registered first.
func (r *MongoNoticeRepo) ListMatching(cond *models.Condition, offset, limit int) ([]models.Notice, error) {
	return r.find(fitFilter(cond), offset, limit)
}

// ListByIDs retrieves notices for the given ids, newest-registered first.
func (r *MongoNoticeRepo) ListByIDs(ids []string, offset, limit int) ([]models.Notice, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(bson.M{"id": bson.M{"$in": ids}}, offset, limit)
}

// ListExpirable returns ids of valid notices whose end date is strictly
// before the current date.
func (r *MongoNoticeRepo) ListExpirable(now time.Time) ([]string, error) {
	today := truncateToDay(now)
	return r.findIDs(bson.M{
		"valid":   true,
		"endDate": bson.M{"$lt": today},
	})
}

// ListWithDaysLeft returns ids of valid notices with exactly the given
// number of whole days until their end date, at date granularity.
func (r *MongoNoticeRepo) ListWithDaysLeft(days int, now time.Time) ([]string, error) {
	target := truncateToDay(now).AddDate(0, 0, days)
	return r.findIDs(bson.M{
		"valid":   true,
		"endDate": bson.M{"$gte": target, "$lt": target.AddDate(0, 0, 1)},
	})
}

func (r *MongoNoticeRepo) findIDs(filter bson.M) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "id", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list notice ids: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

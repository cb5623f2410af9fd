package condRepo

import (
	"context"
	"fmt"
	"time"

	"smatching/database"
	"smatching/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConditionRepo implements ConditionRepository using MongoDB.
type MongoConditionRepo struct {
	coll *mongo.Collection
}

// NewMongoConditionRepo creates a new instance of ConditionRepository using MongoDB.
func NewMongoConditionRepo() ConditionRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("conditions")
	repo := &MongoConditionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoConditionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a condition by its id, or nil when absent.
func (r *MongoConditionRepo) GetByID(conditionID string) (*models.Condition, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var cond models.Condition
	if err := r.coll.FindOne(ctx, bson.M{"id": conditionID}).Decode(&cond); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch condition with id %s: %w", conditionID, err)
	}
	return &cond, nil
}

// ListByUser retrieves a user's conditions in creation order.
func (r *MongoConditionRepo) ListByUser(userID string) ([]models.Condition, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list conditions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var conds []models.Condition
	for cursor.Next(ctx) {
		var c models.Condition
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode condition: %w", err)
		}
		conds = append(conds, c)
	}
	return conds, nil
}

// CountByUser reports how many conditions a user owns.
func (r *MongoConditionRepo) CountByUser(userID string) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count conditions for user %s: %w", userID, err)
	}
	return int(n), nil
}

// Create inserts a new condition document.
func (r *MongoConditionRepo) Create(cond *models.Condition) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	cond.CreatedAt = now
	cond.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, cond)
	if err != nil {
		return fmt.Errorf("failed to create condition: %w", err)
	}
	return nil
}

// Update replaces the editable fields of a user's condition.
func (r *MongoConditionRepo) Update(userID, conditionID string, cond *models.Condition) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": conditionID, "userId": userID}
	update := bson.M{"$set": bson.M{
		"name":         cond.Name,
		"location":     cond.Location,
		"age":          cond.Age,
		"period":       cond.Period,
		"businessType": cond.BusinessType,
		"category":     cond.Category,
		"field":        cond.Field,
		"advantage":    cond.Advantage,
		"updatedAt":    time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update condition with id %s: %w", conditionID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user's condition.
func (r *MongoConditionRepo) Delete(userID, conditionID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": conditionID, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete condition with id %s: %w", conditionID, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAlert flips the alert flag on one condition of the user.
func (r *MongoConditionRepo) SetAlert(userID, conditionID string, on bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": conditionID, "userId": userID}
	update := bson.M{"$set": bson.M{"alertOn": on, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set alert on condition %s: %w", conditionID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAlertForAllOfUser flips the alert flag on every condition of the user.
func (r *MongoConditionRepo) SetAlertForAllOfUser(userID string, on bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"alertOn": on, "updatedAt": time.Now()}}
	_, err := r.coll.UpdateMany(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to set alert for all conditions of user %s: %w", userID, err)
	}
	return nil
}

// CountAlertOn reports how many of the user's conditions have the alert flag on.
func (r *MongoConditionRepo) CountAlertOn(userID string) (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "alertOn": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count alert conditions for user %s: %w", userID, err)
	}
	return int(n), nil
}

// ListAlertUsers returns the distinct owners of alert-enabled conditions
// matching the given notice. A zero mask on the notice side is a
// wildcard, so that field constrains nothing.
func (r *MongoConditionRepo) ListAlertUsers(notice *models.Notice) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	and := []bson.M{{"alertOn": true}}
	fields := []struct {
		key  string
		mask int
	}{
		{"location", notice.Location},
		{"age", notice.Age},
		{"period", notice.Period},
		{"businessType", notice.BusinessType},
		{"category", notice.Category},
		{"field", notice.Field},
		{"advantage", notice.Advantage},
	}
	for _, f := range fields {
		if f.mask == 0 {
			continue
		}
		and = append(and, bson.M{f.key: bson.M{"$bitsAnySet": f.mask}})
	}

	raw, err := r.coll.Distinct(ctx, "userId", bson.M{"$and": and})
	if err != nil {
		return nil, fmt.Errorf("failed to find users matching notice %s: %w", notice.ID, err)
	}

	users := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			users = append(users, s)
		}
	}
	return users, nil
}

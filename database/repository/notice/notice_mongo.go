package noticeRepo

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

// MongoNoticeRepo implements NoticeRepository using MongoDB.
type MongoNoticeRepo struct {
	coll *mongo.Collection
}

// NewMongoNoticeRepo creates a new instance of NoticeRepository using MongoDB.
func NewMongoNoticeRepo() NoticeRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("notices")
	repo := &MongoNoticeRepo{coll: coll}

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
func (r *MongoNoticeRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "valid", Value: 1}, {Key: "regDate", Value: -1}}},
		{Keys: bson.D{{Key: "valid", Value: 1}, {Key: "endDate", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a notice by its id, or nil when absent.
func (r *MongoNoticeRepo) GetByID(noticeID string) (*models.Notice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var n models.Notice
	if err := r.coll.FindOne(ctx, bson.M{"id": noticeID}).Decode(&n); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch notice with id %s: %w", noticeID, err)
	}
	return &n, nil
}

// Create inserts a new notice document.
func (r *MongoNoticeRepo) Create(n *models.Notice) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to create notice: %w", err)
	}
	return nil
}

// CountAll reports the number of valid notices.
func (r *MongoNoticeRepo) CountAll() (int, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"valid": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count notices: %w", err)
	}
	return int(n), nil
}

// ListAll retrieves valid notices newest-registered first.
func (r *MongoNoticeRepo) ListAll(offset, limit int) ([]models.Notice, error) {
	return r.find(bson.M{"valid": true}, offset, limit)
}

// Invalidate marks a notice inactive.
func (r *MongoNoticeRepo) Invalidate(noticeID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": noticeID}, bson.M{"$set": bson.M{"valid": false}})
	if err != nil {
		return fmt.Errorf("failed to invalidate notice %s: %w", noticeID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementReadCount bumps a notice's view counter.
func (r *MongoNoticeRepo) IncrementReadCount(noticeID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": noticeID}, bson.M{"$inc": bson.M{"readCount": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment read count for notice %s: %w", noticeID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// find runs a filtered query sorted by regDate descending with
// offset/limit pagination. The sort includes id as a tiebreaker so
// repeated pages never skip or repeat a notice.
func (r *MongoNoticeRepo) find(filter bson.M, offset, limit int) ([]models.Notice, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "regDate", Value: -1}, {Key: "id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer cursor.Close(ctx)

	var notices []models.Notice
	for cursor.Next(ctx) {
		var n models.Notice
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("failed to decode notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, nil
}

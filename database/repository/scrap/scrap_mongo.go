package scrapRepo

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

// MongoScrapRepo implements ScrapRepository using MongoDB.
type MongoScrapRepo struct {
	coll *mongo.Collection
}

// NewMongoScrapRepo creates a new instance of ScrapRepository using MongoDB.
func NewMongoScrapRepo() ScrapRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("scraps")
	repo := &MongoScrapRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes enforces one bookmark per (user, notice) pair.
func (r *MongoScrapRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "noticeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "noticeId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// IsScraped reports whether the user has bookmarked the notice.
func (r *MongoScrapRepo) IsScraped(userID, noticeID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "noticeId": noticeID})
	if err != nil {
		return false, fmt.Errorf("failed to check scrap for user %s notice %s: %w", userID, noticeID, err)
	}
	return n > 0, nil
}

// Insert records a bookmark.
func (r *MongoScrapRepo) Insert(userID, noticeID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	scrap := models.Scrap{UserID: userID, NoticeID: noticeID, CreatedAt: time.Now()}
	if _, err := r.coll.InsertOne(ctx, scrap); err != nil {
		return fmt.Errorf("failed to insert scrap for user %s notice %s: %w", userID, noticeID, err)
	}
	return nil
}

// Delete removes a bookmark.
func (r *MongoScrapRepo) Delete(userID, noticeID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID, "noticeId": noticeID}); err != nil {
		return fmt.Errorf("failed to delete scrap for user %s notice %s: %w", userID, noticeID, err)
	}
	return nil
}

// ListScrapers returns the ids of users who bookmarked the notice.
func (r *MongoScrapRepo) ListScrapers(noticeID string) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "userId", bson.M{"noticeId": noticeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list scrapers of notice %s: %w", noticeID, err)
	}

	users := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			users = append(users, s)
		}
	}
	return users, nil
}

// ListByUser returns the notice ids the user has bookmarked, newest
// bookmark first.
func (r *MongoScrapRepo) ListByUser(userID string) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list scraps for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var s models.Scrap
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode scrap: %w", err)
		}
		ids = append(ids, s.NoticeID)
	}
	return ids, nil
}

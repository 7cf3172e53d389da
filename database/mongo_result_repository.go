package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
)

type MongoResultRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoResultRepository(db *MongoDB) *MongoResultRepository {
	collection := db.GetCollection(ResultsCollection)
	logger := logging.WithPrefix("mongo_result_repo")

	ensureIndexes(collection, logger, mongo.IndexModel{
		Keys: bson.D{
			{Key: "season", Value: 1},
			{Key: "week", Value: 1},
			{Key: "player_id", Value: 1},
			{Key: "category", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})

	return &MongoResultRepository{
		collection: collection,
		logger:     logger,
	}
}

// Upsert stores an outcome keyed by season, week, player and category.
// Unresolved outcomes are never written.
func (r *MongoResultRepository) Upsert(ctx context.Context, result *models.Result) error {
	if !result.Outcome.IsResolved() {
		return fmt.Errorf("refusing to store unresolved outcome for player %s", result.PlayerID.Hex())
	}

	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	filter := bson.M{
		"season":    result.Season,
		"week":      result.Week,
		"player_id": result.PlayerID,
		"category":  result.Category,
	}
	update := bson.M{
		"$set": bson.M{
			"outcome":    result.Outcome,
			"pick_id":    result.PickID,
			"updated_at": result.UpdatedAt,
		},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert result: %w", err)
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		result.ID = id
	}
	return nil
}

// FindByWeek returns a week's outcomes
func (r *MongoResultRepository) FindByWeek(ctx context.Context, season, week int) ([]*models.Result, error) {
	return findMany[models.Result](ctx, r.collection, bson.M{"season": season, "week": week})
}

// FindBySeason returns a season's outcomes in insertion order
func (r *MongoResultRepository) FindBySeason(ctx context.Context, season int) ([]*models.Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findMany[models.Result](ctx, r.collection, bson.M{"season": season}, opts)
}

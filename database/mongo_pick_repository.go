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

type MongoPickRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoPickRepository(db *MongoDB) *MongoPickRepository {
	collection := db.GetCollection(PicksCollection)
	logger := logging.WithPrefix("mongo_pick_repo")

	ensureIndexes(collection, logger,
		// One pick per player per category per week
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
				{Key: "player_id", Value: 1},
				{Key: "category", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		// Taken-value lookups
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "season", Value: 1},
				{Key: "week", Value: 1},
				{Key: "category", Value: 1},
				{Key: "value", Value: 1},
			},
		},
	)

	return &MongoPickRepository{
		collection: collection,
		logger:     logger,
	}
}

// Upsert stores a pick keyed by season, week, player and category. Last write wins.
func (r *MongoPickRepository) Upsert(ctx context.Context, pick *models.Pick) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	filter := bson.M{
		"season":    pick.Season,
		"week":      pick.Week,
		"player_id": pick.PlayerID,
		"category":  pick.Category,
	}
	set := bson.M{
		"value":      pick.Value,
		"updated_at": pick.UpdatedAt,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": pick.CreatedAt},
	}
	if pick.GameID != nil {
		set["game_id"] = *pick.GameID
	} else {
		update["$unset"] = bson.M{"game_id": ""}
	}

	res, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert pick: %w", err)
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		pick.ID = id
	}
	return nil
}

// FindByWeek returns every pick of a week in submission order
func (r *MongoPickRepository) FindByWeek(ctx context.Context, season, week int) ([]*models.Pick, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return findMany[models.Pick](ctx, r.collection, bson.M{"season": season, "week": week}, opts)
}

// FindByPlayerCategory returns a player's pick for a category, nil if none
func (r *MongoPickRepository) FindByPlayerCategory(ctx context.Context, season, week int, playerID primitive.ObjectID, category models.Category) (*models.Pick, error) {
	return findOne[models.Pick](ctx, r.collection, bson.M{
		"season":    season,
		"week":      week,
		"player_id": playerID,
		"category":  category,
	})
}

// FindByValue returns the picks holding a value in a category
func (r *MongoPickRepository) FindByValue(ctx context.Context, season, week int, category models.Category, value string) ([]*models.Pick, error) {
	return findMany[models.Pick](ctx, r.collection, bson.M{
		"season":   season,
		"week":     week,
		"category": category,
		"value":    value,
	})
}

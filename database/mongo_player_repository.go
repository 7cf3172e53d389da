package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
)

type MongoPlayerRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoPlayerRepository(db *MongoDB) *MongoPlayerRepository {
	collection := db.GetCollection(PlayersCollection)
	logger := logging.WithPrefix("mongo_player_repo")

	ensureIndexes(collection, logger, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoPlayerRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindByName returns the player with the exact name, nil if none
func (r *MongoPlayerRepository) FindByName(ctx context.Context, name string) (*models.Player, error) {
	return findOne[models.Player](ctx, r.collection, bson.M{"name": name})
}

// FindOrCreate returns the named player, inserting it if it does not exist yet
func (r *MongoPlayerRepository) FindOrCreate(ctx context.Context, name string) (*models.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{"name": name, "created_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var player models.Player
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&player); err != nil {
		return nil, fmt.Errorf("failed to upsert player %q: %w", name, err)
	}
	return &player, nil
}

// FindAll returns every player ordered by name
func (r *MongoPlayerRepository) FindAll(ctx context.Context) ([]*models.Player, error) {
	return findMany[models.Player](ctx, r.collection, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

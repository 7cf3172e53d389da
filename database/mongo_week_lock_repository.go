package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
)

// MongoWeekLockRepository reads week locks. Locks are written by the admin tooling.
type MongoWeekLockRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoWeekLockRepository(db *MongoDB) *MongoWeekLockRepository {
	collection := db.GetCollection(WeekLocksCollection)
	logger := logging.WithPrefix("mongo_week_lock_repo")

	ensureIndexes(collection, logger, mongo.IndexModel{
		Keys:    bson.D{{Key: "season", Value: 1}, {Key: "week", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoWeekLockRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindByWeek returns the week's lock, nil if the week is open
func (r *MongoWeekLockRepository) FindByWeek(ctx context.Context, season, week int) (*models.WeekLock, error) {
	return findOne[models.WeekLock](ctx, r.collection, bson.M{"season": season, "week": week})
}

// MongoNFLPlayerRepository reads the touchdown scorer roster
type MongoNFLPlayerRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoNFLPlayerRepository(db *MongoDB) *MongoNFLPlayerRepository {
	collection := db.GetCollection(NFLPlayersCollection)
	logger := logging.WithPrefix("mongo_nfl_player_repo")

	ensureIndexes(collection, logger, mongo.IndexModel{
		Keys: bson.D{{Key: "team", Value: 1}, {Key: "active", Value: 1}},
	})

	return &MongoNFLPlayerRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindActiveByTeams returns active players on any of the teams
func (r *MongoNFLPlayerRepository) FindActiveByTeams(ctx context.Context, teams []string) ([]*models.NFLPlayer, error) {
	filter := bson.M{
		"team":   bson.M{"$in": teams},
		"active": true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "team", Value: 1}, {Key: "name", Value: 1}})
	return findMany[models.NFLPlayer](ctx, r.collection, filter, opts)
}

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

type MongoGameRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoGameRepository(db *MongoDB) *MongoGameRepository {
	collection := db.GetCollection(GamesCollection)
	logger := logging.WithPrefix("mongo_game_repo")

	// One game per matchup per week
	ensureIndexes(collection, logger, mongo.IndexModel{
		Keys:    bson.D{{Key: "season", Value: 1}, {Key: "week", Value: 1}, {Key: "home_team", Value: 1}, {Key: "away_team", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoGameRepository{
		collection: collection,
		logger:     logger,
	}
}

// Upsert stores a game keyed by season, week and teams. The game's ID is filled in on insert.
func (r *MongoGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	filter := bson.M{
		"season":    game.Season,
		"week":      game.Week,
		"home_team": game.HomeTeam,
		"away_team": game.AwayTeam,
	}
	update := bson.M{
		"$set": bson.M{
			"commence_time": game.CommenceTime,
			"line_data":     game.LineData,
			"updated_at":    game.UpdatedAt,
		},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", game.Key(), err)
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		game.ID = id
	}
	return nil
}

// FindByWeek returns a week's games in kickoff order
func (r *MongoGameRepository) FindByWeek(ctx context.Context, season, week int) ([]*models.Game, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "commence_time", Value: 1},
		{Key: "home_team", Value: 1},
	})
	return findMany[models.Game](ctx, r.collection, bson.M{"season": season, "week": week}, opts)
}

// FindByID returns a game, nil if none
func (r *MongoGameRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	return findOne[models.Game](ctx, r.collection, bson.M{"_id": id})
}

package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
)

type MongoGameResultRepository struct {
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoGameResultRepository(db *MongoDB) *MongoGameResultRepository {
	collection := db.GetCollection(GameResultsCollection)
	logger := logging.WithPrefix("mongo_game_result_repo")

	ensureIndexes(collection, logger, mongo.IndexModel{
		Keys:    bson.D{{Key: "season", Value: 1}, {Key: "week", Value: 1}, {Key: "home_team", Value: 1}, {Key: "away_team", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoGameResultRepository{
		collection: collection,
		logger:     logger,
	}
}

// Upsert stores a result keyed by season, week and teams, overwriting scores and grading
func (r *MongoGameResultRepository) Upsert(ctx context.Context, result *models.GameResult) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	filter := bson.M{
		"season":    result.Season,
		"week":      result.Week,
		"home_team": result.HomeTeam,
		"away_team": result.AwayTeam,
	}
	update := bson.M{
		"$set": bson.M{
			"home_score":       result.HomeScore,
			"away_score":       result.AwayScore,
			"final":            result.Final,
			"spread":           result.Spread,
			"total":            result.Total,
			"moneyline_winner": result.MoneylineWinner,
			"spread_winner":    result.SpreadWinner,
			"total_result":     result.TotalResult,
			"last_updated":     result.LastUpdated,
		},
	}

	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert game result %s: %w", result.Key(), err)
	}
	return nil
}

// FindByWeek returns a week's stored results
func (r *MongoGameResultRepository) FindByWeek(ctx context.Context, season, week int) ([]*models.GameResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "home_team", Value: 1}})
	return findMany[models.GameResult](ctx, r.collection, bson.M{"season": season, "week": week}, opts)
}

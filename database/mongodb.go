package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"nfl-pickem-go/logging"
)

// Collection names
const (
	PlayersCollection     = "players"
	GamesCollection       = "games"
	PicksCollection       = "picks"
	GameResultsCollection = "game_results"
	ResultsCollection     = "results"
	WeekLocksCollection   = "week_locks"
	NFLPlayersCollection  = "nfl_players"
)

// Config holds MongoDB connection settings. URI, when set, takes precedence over host and port.
type Config struct {
	URI      string
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// ConnectionURI builds the mongodb:// URI for the config
func (c Config) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	if c.Username != "" && c.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
			c.Username, c.Password, c.Host, c.Port, c.Database, c.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", c.Host, c.Port, c.Database)
}

type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logging.Logger
}

func NewMongoConnection(ctx context.Context, config Config) (*MongoDB, error) {
	logger := logging.WithPrefix("MongoDB")
	ctx, cancel := context.WithTimeout(ctx, MediumTimeout)
	defer cancel()

	if config.Username != "" && config.URI == "" {
		logger.Infof("Connecting with authentication as user: %s", config.Username)
	} else {
		logger.Info("Connecting")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionURI()))
	if err != nil {
		logger.Errorf("Failed to connect: %v", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Errorf("Failed to ping: %v", err)
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Infof("Connected to database=%s", config.Database)
	return &MongoDB{
		client:   client,
		database: client.Database(config.Database),
		logger:   logger,
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShortTimeout)
	defer cancel()

	err := m.client.Disconnect(ctx)
	if err != nil {
		m.logger.Errorf("Error disconnecting: %v", err)
	} else {
		m.logger.Info("Connection closed")
	}
	return err
}

// Ping checks the connection, used by the health endpoint
func (m *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return nil
}

func (m *MongoDB) GetCollection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

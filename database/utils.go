package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nfl-pickem-go/logging"
)

// Timeouts applied on top of the caller's context
const (
	// ShortTimeout for single document reads and writes
	ShortTimeout = 5 * time.Second

	// MediumTimeout for queries returning many documents
	MediumTimeout = 10 * time.Second
)

// ensureIndexes creates indexes for a collection, logging rather than failing
// so a missing index never blocks startup
func ensureIndexes(coll *mongo.Collection, logger *logging.Logger, models ...mongo.IndexModel) {
	ctx, cancel := context.WithTimeout(context.Background(), ShortTimeout)
	defer cancel()

	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		logger.Errorf("Failed to create indexes on %s: %v", coll.Name(), err)
	}
}

// findMany runs a query and decodes every document
func findMany[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, MediumTimeout)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []*T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

// findOne returns nil, nil when nothing matches
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, ShortTimeout)
	defer cancel()

	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find in %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

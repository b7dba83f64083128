// Package docdb connects to the MongoDB document store.
package docdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultTimeout bounds connecting and the initial ping.
const DefaultTimeout = 10 * time.Second

// Options configures Connect.
type Options struct {
	URI     string
	Timeout time.Duration
}

// Connect creates a client for opts.URI and pings the primary. The client
// must be released with Disconnect.
func Connect(ctx context.Context, opts Options) (*mongo.Client, error) {
	if opts.URI == "" {
		return nil, errors.New("mongo URI is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		if dErr := client.Disconnect(ctx); dErr != nil {
			return nil, fmt.Errorf("pinging mongo: %w (also failed to disconnect: %v)", err, dErr)
		}
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client, nil
}

// Collection returns the named collection.
func Collection(client *mongo.Client, database, name string) *mongo.Collection {
	return client.Database(database).Collection(name)
}

// EnsureIndexes creates the indexes the comment queries rely on.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: 1}},
		Options: options.Index().SetName("created_at_1"),
	})
	if err != nil {
		return fmt.Errorf("creating created_at index: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the MongoDB connection and all collection access.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and pings it.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the service relies on: a unique
// case-insensitive name index per catalog collection (so concurrent
// find-or-create resolves to one record) and a unique username index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	nameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "namn", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	}
	for _, coll := range []string{"categories", "brands", "suppliers"} {
		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, nameIndex); err != nil {
			return fmt.Errorf("failed to create name index on %s: %w", coll, err)
		}
	}

	usernameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.db.Collection("users").Indexes().CreateOne(ctx, usernameIndex); err != nil {
		return fmt.Errorf("failed to create username index: %w", err)
	}
	return nil
}

// ClearSeedData wipes the catalog collections and products before a reseed.
// Users and orders are left alone.
func (s *Store) ClearSeedData(ctx context.Context) error {
	for _, coll := range []string{"categories", "brands", "suppliers", "products"} {
		if _, err := s.db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", coll, err)
		}
	}
	return nil
}

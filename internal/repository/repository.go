// Package repository provides document store access backed by MongoDB.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	listingsCollection = "listings"

	connectTimeout = 10 * time.Second
)

// Repository provides document store access methods.
type Repository struct {
	client   *mongo.Client
	users    *mongo.Collection
	listings *mongo.Collection
}

// New connects to MongoDB and prepares the collections.
// The users collection gets a unique index on email so duplicate
// accounts are rejected at write time.
func New(ctx context.Context, mongoURL, database string) (*Repository, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	r := &Repository{
		client:   client,
		users:    db.Collection(usersCollection),
		listings: db.Collection(listingsCollection),
	}

	if err := r.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return r, nil
}

func (r *Repository) ensureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = r.listings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}

// Ping checks document store connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from the document store.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

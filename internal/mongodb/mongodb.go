// Package mongodb implements the domain repositories on top of MongoDB.
//
// All reaction-set mutation goes through BlogRepo.ToggleReaction, which
// expresses the change as a single FindOneAndUpdate so concurrent toggles
// against the same document never lose updates.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	"github.com/jetsaguirel/simple-blog/internal/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	blogsCollection = "blogs"

	connectTimeout = 10 * time.Second
)

// Connect opens a client, verifies the connection, and returns the database
// handle the repositories share. The handle is created once at startup and
// passed explicitly; there is no package-level client.
func Connect(ctx context.Context, mongoURL, dbName string) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(mongoURL).
		SetMaxPoolSize(25).
		SetServerSelectionTimeout(5 * time.Second)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the repositories rely on. Safe to call
// on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	_, err = db.Collection(blogsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create blogs indexes: %w", err)
	}

	return nil
}

// HealthChecker adapts a client to the readiness probe.
type HealthChecker struct {
	client *mongo.Client
}

func NewHealthChecker(client *mongo.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

func (h *HealthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}

// recordOp tracks the outcome of a driver call. mongo.ErrNoDocuments counts
// as success: an absent document is a domain outcome, not a store failure.
func recordOp(op string, err error) {
	status := "success"
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		status = "error"
	}
	metrics.MongoOpsTotal.WithLabelValues(op, status).Inc()
}

// translateError maps driver failures onto the domain taxonomy: timeouts and
// network errors become ErrStoreUnavailable (retry-safe), everything else is
// passed through for the caller to classify.
func translateError(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Shahir-47/Peer-to-Playlist/internal/config"
	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/metrics"
	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when signing up with a registered email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("database unavailable")
)

const retryDelay = 500 * time.Millisecond

// DB is the MongoDB-backed store.
type DB struct {
	client   *mongo.Client
	db       *mongo.Database
	users    *mongo.Collection
	messages *mongo.Collection
	cb       *gobreaker.CircuitBreaker[any]
	timeout  time.Duration
}

// New connects to MongoDB, retrying transient failures up to cfg.MaxRetry
// times, and ensures indexes exist.
func New(ctx context.Context, cfg *config.MongoConfig) (*DB, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opts.SetServerSelectionTimeout(timeout)

	attempts := cfg.MaxRetry
	if attempts < 1 {
		attempts = 1
	}

	var (
		client *mongo.Client
		err    error
	)
	for i := 0; i < attempts; i++ {
		client, err = connect(ctx, opts, timeout)
		if err == nil {
			break
		}
		logging.Warn().Err(err).Int("attempt", i+1).Int("max_attempts", attempts).Msg("mongo connection failed")
		if ctx.Err() != nil {
			break
		}
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	database := client.Database(cfg.Database)
	d := &DB{
		client:   client,
		db:       database,
		users:    database.Collection(models.User{}.Collection()),
		messages: database.Collection(models.Message{}.Collection()),
		cb:       newBreaker("mongodb"),
		timeout:  timeout,
	}

	if err := d.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logging.Info().Str("database", cfg.Database).Msg("connected to MongoDB")
	return d, nil
}

func connect(ctx context.Context, opts *options.ClientOptions, timeout time.Duration) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the indexes the queries depend on.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	_, err := d.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = d.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "sender", Value: 1},
			{Key: "receiver", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("conversation"),
	})
	if err != nil {
		return fmt.Errorf("failed to create messages index: %w", err)
	}
	return nil
}

// Ping checks the server is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.do(ctx, "ping", "admin", func(ctx context.Context) error {
		return d.client.Ping(ctx, nil)
	})
}

// Close disconnects from the server.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// do runs fn with the operation timeout, through the breaker, and records
// metrics.
func (d *DB) do(ctx context.Context, op, collection string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	_, err := d.cb.Execute(func() (any, error) {
		return nil, fn(ctx)
	})

	recorded := err
	if isExpected(err) {
		recorded = nil
	}
	metrics.RecordMongoOperation(op, collection, time.Since(start), recorded)

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collTasks = "tasks"
	collUsers = "users"

	// connectTimeout bounds a single handshake attempt.
	connectTimeout = 10 * time.Second
)

// Config holds the settings needed to open the store.
type Config struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name.
	Database string

	// RetryInterval is the fixed delay between failed handshake attempts.
	RetryInterval time.Duration
}

// Store is a thread-safe handle to the task and user collections. The zero
// of readiness is "not connected": operations fail with ErrNotReady until
// Run completes a handshake.
type Store struct {
	cfg Config

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

// New creates a Store. No connection is attempted; call Run.
func New(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Run attempts the connection handshake, retrying on a fixed interval with no
// retry cap, until it succeeds or ctx is cancelled. Handlers calling into the
// store meanwhile receive ErrNotReady for each individual request.
func (s *Store) Run(ctx context.Context) {
	for {
		if err := s.connect(ctx); err != nil {
			slog.Error("store: connection failed — retrying",
				"retry_in", s.cfg.RetryInterval, "err", err)
		} else {
			slog.Info("store: connected", "database", s.cfg.Database)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.RetryInterval):
		}
	}
}

// Ready reports whether the connection handshake has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

// Close disconnects the underlying client, if connected.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}

// connect performs one handshake attempt: dial, ping, then publish the
// database handle.
func (s *Store) connect(ctx context.Context) error {
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping: %w", err)
	}

	db := client.Database(s.cfg.Database)
	if err := ensureIndexes(cctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("create indexes: %w", err)
	}

	s.mu.Lock()
	s.client = client
	s.db = db
	s.mu.Unlock()
	return nil
}

// ensureIndexes backs the one-user-per-uid guarantee at the database level.
// CreateOne is idempotent when the index already exists.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// collection returns the named collection, or ErrNotReady before the
// handshake completes.
func (s *Store) collection(name string) (*mongo.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotReady
	}
	return s.db.Collection(name), nil
}

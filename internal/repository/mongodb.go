// Package repository provides data access layer for MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	BundlesCollection = "bundles"
	LogsCollection    = "logs"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	// EnableCompression turns on zstd/snappy/zlib wire compression.
	EnableCompression bool
}

// DefaultMongoConfig returns the pool settings used in production.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and collection access.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Bundles  *mongo.Collection
	Logs     *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and ensures indexes.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(uri, cfg))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:   client,
		Database: db,
		Bundles:  db.Collection(BundlesCollection),
		Logs:     db.Collection(LogsCollection),
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	if err := m.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create %s indexes: %w", BundlesCollection, err)
	}
	return m, nil
}

func clientOptions(uri string, cfg MongoConfig) *options.ClientOptions {
	opts := options.Client().ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.EnableCompression {
		opts.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}
	return opts
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	// Concurrent creates of one slug surface as ErrDuplicateSlug through this index.
	_, err := m.Bundles.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})
	if err != nil {
		return err
	}

	// Log indexes are best effort.
	_, _ = m.Logs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "action_type", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "bundle_slug", Value: 1}}},
	})
	return nil
}

// SetLogsTTL replaces the TTL index on logs.timestamp.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttlDays int) error {
	_, _ = m.Logs.Indexes().DropOne(ctx, "timestamp_1")

	ttl := mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttlDays * 24 * 60 * 60)),
	}
	_, err := m.Logs.Indexes().CreateOne(ctx, ttl)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && (cmdErr.Name == "IndexOptionsConflict" || cmdErr.Name == "IndexKeySpecsConflict") {
		return nil
	}
	return err
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary with a short timeout.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}

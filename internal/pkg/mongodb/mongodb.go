// Package mongodb opens the document database connection shared by every
// module store.
package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	// ErrURIRequired is returned when no connection string is configured.
	ErrURIRequired = errors.New("mongodb uri is required")
	// ErrDatabaseRequired is returned when no database name is configured.
	ErrDatabaseRequired = errors.New("mongodb database name is required")
)

// Config holds connection settings.
type Config struct {
	URI            string
	Database       string
	AppName        string
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

// Client couples a connected client with the application database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	ping   time.Duration
}

// Connect dials MongoDB and verifies the primary is reachable.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URI == "" {
		return nil, ErrURIRequired
	}
	if cfg.Database == "" {
		return nil, ErrDatabaseRequired
	}
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 5 * time.Second
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	c := &Client{client: client, db: client.Database(cfg.Database), ping: cfg.PingTimeout}
	if err := c.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return c, nil
}

// Database returns the application database handle.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Ping checks the primary within the configured ping timeout.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.ping)
	defer cancel()

	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

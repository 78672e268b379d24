package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rogerio-castellano/product-catalog/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrHandleClosed is returned by Set once Close has run.
var ErrHandleClosed = errors.New("mongo handle is closed")

// Handle holds the process-wide products collection. It starts empty and is
// set once the connection has been verified.
type Handle struct {
	mu     sync.Mutex
	closed bool
	client atomic.Pointer[mongo.Client]
	coll   atomic.Pointer[mongo.Collection]
}

func NewHandle() *Handle {
	return &Handle{}
}

// Set publishes the connection. After Close it refuses and the caller keeps
// ownership of client.
func (h *Handle) Set(client *mongo.Client, coll *mongo.Collection) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHandleClosed
	}
	h.client.Store(client)
	h.coll.Store(coll)
	return nil
}

// Collection returns the products collection and whether it is ready.
func (h *Handle) Collection() (*mongo.Collection, bool) {
	coll := h.coll.Load()
	return coll, coll != nil
}

func (h *Handle) Ready() bool {
	return h.coll.Load() != nil
}

// Close disconnects the client if one was ever set. Later calls to Set fail.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.coll.Store(nil)
	client := h.client.Swap(nil)
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Connect opens a client with the Stable API v1 and pings the primary.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	return client, nil
}

// Open connects and publishes the configured collection on h. It is attempted once.
func Open(ctx context.Context, cfg config.MongoConfig, h *Handle) error {
	client, err := Connect(ctx, cfg)
	if err != nil {
		return err
	}
	if err := h.Set(client, client.Database(cfg.Database).Collection(cfg.Collection)); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}
	return nil
}

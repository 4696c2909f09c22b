// Package database owns the single MongoDB handle for the process.
// Absence of a configured URI outside production is a supported mode,
// not a failure: stores then operate on their in-process mirrors.
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// State tracks the connection lifecycle. Degraded is terminal for the
// process; runtime reconfiguration is not supported.
type State string

const (
	StateUnconfigured State = "unconfigured"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateDegraded     State = "degraded"
)

const connectTimeout = 10 * time.Second

// Handle is a live database reference handed to the stores.
type Handle struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Collection returns the named collection on the handle.
func (h *Handle) Collection(name string) *mongo.Collection {
	return h.DB.Collection(name)
}

// Manager lazily connects on first Acquire and caches the handle for
// the process lifetime.
type Manager struct {
	uri        string
	dbName     string
	production bool
	logger     *logrus.Entry

	mu     sync.Mutex
	state  State
	handle *Handle
}

// NewManager creates a manager. No connection is attempted until the
// first Acquire call.
func NewManager(uri, dbName string, production bool, logger *logrus.Logger) *Manager {
	return &Manager{
		uri:        uri,
		dbName:     dbName,
		production: production,
		logger:     logger.WithField("component", "database"),
		state:      StateUnconfigured,
	}
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Acquire returns the cached handle, connecting on first call. A nil
// handle with nil error means degraded mode: no URI configured, or the
// connection failed outside production. In production a connection
// failure is returned to the caller.
func (m *Manager) Acquire(ctx context.Context) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != nil {
		return m.handle, nil
	}
	if m.state == StateDegraded {
		return nil, nil
	}

	if m.uri == "" {
		// Production never degrades: every Acquire keeps erroring so
		// callers see the connectivity failure instead of mirror data.
		if m.production {
			return nil, fmt.Errorf("MONGO_URI is required in production")
		}
		m.state = StateDegraded
		m.logger.Warn("No MongoDB URI configured, running on in-memory mirrors")
		return nil, nil
	}

	m.state = StateConnecting
	handle, err := m.connect(ctx)
	if err != nil {
		if m.production {
			m.state = StateUnconfigured
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		m.state = StateDegraded
		m.logger.WithError(err).Warn("MongoDB unreachable, degrading to in-memory mirrors")
		return nil, nil
	}

	m.state = StateConnected
	m.handle = handle
	m.logger.WithField("database", m.dbName).Info("MongoDB connected")

	if err := m.ensureIndexes(ctx, handle); err != nil {
		m.logger.WithError(err).Warn("Failed to seed indexes (may already exist)")
	}
	return m.handle, nil
}

func (m *Manager) connect(ctx context.Context) (*Handle, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Handle{Client: client, DB: client.Database(m.dbName)}, nil
}

// ensureIndexes seeds the baseline indexes on first successful connect.
func (m *Manager) ensureIndexes(ctx context.Context, h *Handle) error {
	unique := options.Index().SetUnique(true)

	if _, err := h.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	if _, err := h.Collection("products").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}},
	}); err != nil {
		return err
	}

	_, err := h.Collection("carousels").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Release disconnects and clears the cached handle. Called on process
// shutdown signals.
func (m *Manager) Release(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle == nil {
		return
	}
	if err := m.handle.Client.Disconnect(ctx); err != nil {
		m.logger.WithError(err).Warn("Error disconnecting from MongoDB")
	} else {
		m.logger.Info("MongoDB connection released")
	}
	m.handle = nil
	m.state = StateUnconfigured
}

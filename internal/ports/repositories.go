package ports

import (
	"context"
	"time"
)

// Storage is a durable string key/value area with local-storage semantics:
// last write wins, no transactions, no conflict detection.
type Storage interface {
	// Get returns entities.ErrKeyNotFound when the key has never been set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	// Driver names the backend ("memory", "file", "sqlite", "postgres", "redis").
	Driver() string
	Close() error
}

// HealthChecker is implemented by storage backends that sit behind a connection.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PoolReporter is implemented by SQL-backed storage to expose connection
// pool counters on the detailed health check.
type PoolReporter interface {
	GetConnectionInfo() map[string]interface{}
}

// ThemeApplier mirrors the dark-mode flag onto the document root.
type ThemeApplier interface {
	ApplyTheme(dark bool)
}

// StoreObserver receives store activity for metrics.
type StoreObserver interface {
	MutationApplied(op string)
	PersistFinished(key string, took time.Duration, err error)
	FetchCommitted(topic string, applied bool)
}

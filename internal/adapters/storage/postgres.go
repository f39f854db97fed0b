package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/database"
	"github.com/taskmaster/dashboard/internal/ports"
)

// Postgres stores entries in the local_storage table created by the
// embedded migrations.
type Postgres struct {
	db *database.DB
}

var (
	_ ports.Storage       = (*Postgres)(nil)
	_ ports.HealthChecker = (*Postgres)(nil)
	_ ports.PoolReporter  = (*Postgres)(nil)
)

// NewPostgres wraps an open connection. The schema must already be migrated.
func NewPostgres(db *database.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var val string
	err := p.db.DB.GetContext(ctx, &val, "SELECT value FROM local_storage WHERE key = $1", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", entities.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return val, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO local_storage (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := p.db.DB.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Remove(ctx context.Context, key string) error {
	if _, err := p.db.DB.ExecContext(ctx, "DELETE FROM local_storage WHERE key = $1", key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := p.db.DB.SelectContext(ctx, &keys, "SELECT key FROM local_storage ORDER BY key"); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

func (p *Postgres) HealthCheck(ctx context.Context) error {
	return p.db.HealthCheck(ctx)
}

func (p *Postgres) GetConnectionInfo() map[string]interface{} {
	return p.db.GetConnectionInfo()
}

func (p *Postgres) Driver() string { return DriverPostgres }

func (p *Postgres) Close() error {
	return p.db.Close()
}

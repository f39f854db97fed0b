package storage

import (
	"context"
	"fmt"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/database"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Open builds the backend named by cfg.Storage.Driver. The postgres driver
// applies pending migrations before returning.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.Storage, error) {
	log = log.WithComponent("storage")

	switch cfg.Storage.Driver {
	case DriverMemory:
		return NewMemory(), nil

	case DriverFile:
		return NewFile(cfg.Storage.Dir)

	case DriverSQLite:
		return NewSQLite(cfg.Storage.SQLitePath)

	case DriverPostgres:
		db, err := database.New(cfg.Database)
		if err != nil {
			return nil, err
		}
		migrator, err := database.NewMigrator(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		changed, err := migrator.Up()
		if err != nil {
			db.Close()
			return nil, err
		}
		if changed {
			log.Infow("Applied storage migrations", "database", cfg.Database.Name)
		}
		return NewPostgres(db), nil

	case DriverRedis:
		return NewRedis(ctx, cfg.Redis)

	default:
		return nil, fmt.Errorf("%w: %q", entities.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmaster/dashboard/internal/adapters/document"
	"github.com/taskmaster/dashboard/internal/adapters/feeds"
	"github.com/taskmaster/dashboard/internal/adapters/storage"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/database"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/infrastructure/metrics"
	"github.com/taskmaster/dashboard/internal/infrastructure/server"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "development"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		Long:  "Start the HTTP API, the change stream and the background feed refresher",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage the postgres storage schema (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, "up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, "down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMigrationVersion(cmd)
		},
	})

	return migrateCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print dashboard version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Dashboard %s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	backend, err := storage.Open(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer backend.Close()

	m := metrics.New()
	root := document.NewRoot()
	st := store.New(backend,
		store.WithLogger(appLogger),
		store.WithThemeApplier(root),
		store.WithObserver(m),
		store.WithWriteTimeout(cfg.Storage.WriteTimeout),
	)

	refresher := services.NewRefreshService(st,
		feeds.NewWeather(cfg.Feeds.WeatherDelay),
		feeds.NewNews(cfg.Feeds.NewsDelay),
		feeds.NewQuotes(cfg.Feeds.StockDelay),
		cfg.Feeds.StockRefreshInterval,
		appLogger,
	)

	srv, err := server.New(cfg, server.Dependencies{
		Store:     st,
		Storage:   backend,
		Document:  root,
		Refresher: refresher,
		Metrics:   m,
	}, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher.Start(ctx, cfg.Feeds.RefreshOnStart)
	defer refresher.Stop()

	appLogger.Infow("Starting dashboard API server",
		"address", cfg.Server.GetAddr(),
		"storage", backend.Driver(),
		"environment", cfg.App.Environment,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.GetAddr())
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func openMigrator() (*database.Migrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	m, err := database.NewMigrator(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, func() { db.Close() }, nil
}

func runMigration(cmd *cobra.Command, direction string) error {
	m, closeDB, err := openMigrator()
	if err != nil {
		return err
	}
	defer closeDB()

	var changed bool
	switch direction {
	case "up":
		changed, err = m.Up()
	case "down":
		changed, err = m.Down()
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Migration %s completed successfully\n", direction)
	}
	return nil
}

func showMigrationVersion(cmd *cobra.Command) error {
	m, closeDB, err := openMigrator()
	if err != nil {
		return err
	}
	defer closeDB()

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
	return nil
}

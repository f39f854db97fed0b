package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// exercise runs the same contract checks against every backend.
func exercise(t *testing.T, s ports.Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "tasks")
		assert.ErrorIs(t, err, entities.ErrKeyNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "darkMode", "true"))
		v, err := s.Get(ctx, "darkMode")
		require.NoError(t, err)
		assert.Equal(t, "true", v)
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "watchlist", `["AAPL"]`))
		require.NoError(t, s.Set(ctx, "watchlist", `["MSFT"]`))
		v, err := s.Get(ctx, "watchlist")
		require.NoError(t, err)
		assert.Equal(t, `["MSFT"]`, v)
	})

	t.Run("keys sorted", func(t *testing.T) {
		keys, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"darkMode", "watchlist"}, keys)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "darkMode"))
		require.NoError(t, s.Remove(ctx, "darkMode"), "removing twice is fine")
		_, err := s.Get(ctx, "darkMode")
		assert.ErrorIs(t, err, entities.ErrKeyNotFound)
	})
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	exercise(t, s)
	assert.Equal(t, DriverMemory, s.Driver())
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)
	exercise(t, s)
	assert.Equal(t, DriverFile, s.Driver())

	data, err := os.ReadFile(filepath.Join(dir, "watchlist.json"))
	require.NoError(t, err)
	assert.Equal(t, `["MSFT"]`, string(data))
}

func TestFileRejectsPathKeys(t *testing.T) {
	s, err := NewFile(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Set(context.Background(), "../escape", "x"))
	_, err = s.Get(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestFileSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(context.Background(), "tasks", "[]"))

	second, err := NewFile(dir)
	require.NoError(t, err)
	v, err := second.Get(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "nested", "dashboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	exercise(t, s)
	assert.Equal(t, DriverSQLite, s.Driver())
	assert.NoError(t, s.HealthCheck(context.Background()))
}

func TestOpen(t *testing.T) {
	cfg := &config.Config{}

	t.Run("memory", func(t *testing.T) {
		cfg.Storage.Driver = DriverMemory
		s, err := Open(context.Background(), cfg, logger.NewNop())
		require.NoError(t, err)
		assert.Equal(t, DriverMemory, s.Driver())
	})

	t.Run("file", func(t *testing.T) {
		cfg.Storage.Driver = DriverFile
		cfg.Storage.Dir = t.TempDir()
		s, err := Open(context.Background(), cfg, logger.NewNop())
		require.NoError(t, err)
		assert.Equal(t, DriverFile, s.Driver())
	})

	t.Run("unknown", func(t *testing.T) {
		cfg.Storage.Driver = "floppy"
		_, err := Open(context.Background(), cfg, logger.NewNop())
		assert.ErrorIs(t, err, entities.ErrUnknownStorageDriver)
	})
}

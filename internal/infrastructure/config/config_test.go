package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.Dir)
	assert.Equal(t, 2*time.Second, cfg.Storage.WriteTimeout)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Feeds.StockRefreshInterval)
	assert.Equal(t, 1200*time.Millisecond, cfg.Feeds.NewsDelay)
	assert.Equal(t, "dashboard:", cfg.Redis.KeyPrefix)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("FEEDS_STOCK_DELAY", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, time.Duration(0), cfg.Feeds.StockDelay)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage driver")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Storage: StorageConfig{Driver: "memory", WriteTimeout: time.Second},
			Feeds:   FeedsConfig{StockRefreshInterval: time.Second},
		}
	}

	require.NoError(t, validateConfig(valid()))

	cfg := valid()
	cfg.Storage.Driver = "file"
	assert.Error(t, validateConfig(cfg), "file driver without dir")

	cfg = valid()
	cfg.Storage.Driver = "postgres"
	assert.Error(t, validateConfig(cfg), "postgres without host")

	cfg = valid()
	cfg.Server.Port = 70000
	assert.Error(t, validateConfig(cfg))
}

func TestDSNHelpers(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "dash", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=dash sslmode=disable", db.GetDSN())
	assert.Equal(t, "postgres://u:p@db:5432/dash?sslmode=disable", db.GetURL())

	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.GetAddr())
}

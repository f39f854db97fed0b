package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/adapters/document"
	"github.com/taskmaster/dashboard/internal/adapters/feeds"
	"github.com/taskmaster/dashboard/internal/adapters/storage"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/infrastructure/metrics"
	"github.com/taskmaster/dashboard/internal/ports"
)

type testEnv struct {
	handler http.Handler
	store   *store.Store
	root    *document.Root
}

func newTestEnv(t *testing.T, backend ports.Storage) *testEnv {
	t.Helper()

	root := document.NewRoot()
	m := metrics.New()
	st := store.New(backend, store.WithThemeApplier(root), store.WithObserver(m))
	refresher := services.NewRefreshService(st, feeds.NewWeather(0), feeds.NewNews(0), feeds.NewQuotes(0), time.Hour, logger.NewNop())

	cfg := &config.Config{
		App:      config.AppConfig{Version: "test"},
		Security: config.SecurityConfig{CORSAllowedOrigins: "*"},
		Metrics:  config.MetricsConfig{Enabled: true},
	}

	srv, err := New(cfg, Dependencies{
		Store:     st,
		Storage:   backend,
		Document:  root,
		Refresher: refresher,
		Metrics:   m,
	}, logger.NewNop())
	require.NoError(t, err)

	return &testEnv{handler: srv.Handler(), store: st, root: root}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, storage.NewMemory())

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/ready", "").Code)

	detailed := env.do(t, http.MethodGet, "/health/detailed", "")
	require.Equal(t, http.StatusOK, detailed.Code)
	assert.Contains(t, detailed.Body.String(), `"driver":"memory"`)

	env.do(t, http.MethodPost, "/api/v1/theme/toggle", "")

	rec := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dashboard_store_mutations_total{op="toggleDarkMode"} 1`)
	assert.Contains(t, rec.Body.String(), `dashboard_storage_writes_total{key="darkMode",result="ok"} 1`)
}

func TestDetailedHealthReportsPool(t *testing.T) {
	backend, err := storage.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	env := newTestEnv(t, backend)

	rec := env.do(t, http.MethodGet, "/health/detailed", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Checks struct {
			Storage struct {
				Driver string         `json:"driver"`
				Pool   map[string]any `json:"pool"`
			} `json:"storage"`
		} `json:"checks"`
	}](t, rec)
	assert.Equal(t, "sqlite", body.Checks.Storage.Driver)
	assert.EqualValues(t, 1, body.Checks.Storage.Pool["max_open_connections"])

	memory := newTestEnv(t, storage.NewMemory())
	assert.NotContains(t, memory.do(t, http.MethodGet, "/health/detailed", "").Body.String(), `"pool"`)
}

type unhealthyStorage struct {
	*storage.Memory
}

func (unhealthyStorage) HealthCheck(context.Context) error {
	return errors.New("connection refused")
}

func TestReadyReportsStorageFailure(t *testing.T) {
	env := newTestEnv(t, unhealthyStorage{storage.NewMemory()})

	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodGet, "/health/detailed", "").Code)
}

func TestTaskRoutes(t *testing.T) {
	env := newTestEnv(t, storage.NewMemory())

	rec := env.do(t, http.MethodPost, "/api/v1/tasks", `{"title":"Write report","priority":"high","dueDate":"2024-03-15"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	task := decode[entities.Task](t, rec)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "general", task.Category)

	rec = env.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPatch, "/api/v1/tasks/"+task.ID, `{"category":"work"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "work", decode[entities.Task](t, rec).Category)

	rec = env.do(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[entities.Task](t, rec).Completed)

	rec = env.do(t, http.MethodGet, "/api/v1/tasks?status=completed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entities.Task](t, rec), 1)

	rec = env.do(t, http.MethodGet, "/api/v1/tasks/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"completionRate":100`)

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/v1/tasks/"+task.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/tasks/"+task.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPatch, "/api/v1/tasks/missing", `{"completed":true}`).Code)
}

func TestTaskValidation(t *testing.T) {
	env := newTestEnv(t, storage.NewMemory())

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"priority":"low"}`},
		{"bad priority", `{"title":"x","priority":"urgent"}`},
		{"bad due date", `{"title":"x","dueDate":"15/03/2024"}`},
		{"malformed json", `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
	assert.Empty(t, env.store.Tasks())
}

func TestThemeAndDocument(t *testing.T) {
	env := newTestEnv(t, storage.NewMemory())

	rec := env.do(t, http.MethodPost, "/api/v1/theme/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"darkMode":true}`, rec.Body.String())
	assert.True(t, env.root.Has(document.DarkClass))

	rec = env.do(t, http.MethodGet, "/api/v1/document", "")
	assert.JSONEq(t, `{"classList":["dark"],"dark":true}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[ports.Snapshot](t, rec).DarkMode)
}

func TestWidgetAndSettingsRoutes(t *testing.T) {
	env := newTestEnv(t, storage.NewMemory())

	rec := env.do(t, http.MethodPatch, "/api/v1/widgets/news", `{"visible":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[entities.Widget](t, rec).Visible)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPatch, "/api/v1/widgets/nope", `{"visible":false}`).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPatch, "/api/v1/widgets/news", `{"type":"clock"}`).Code)

	rec = env.do(t, http.MethodPatch, "/api/v1/settings", `{"location":"Oslo"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	settings := decode[entities.UserSettings](t, rec)
	assert.Equal(t, "Oslo", settings.Location)
	assert.Equal(t, "john.doe@example.com", settings.Email)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPatch, "/api/v1/settings", `{"email":"not-an-email"}`).Code)
}

func TestWatchlistAndStocks(t *testing.T) {
	env := newTestEnv(t, storage.NewMemory())

	rec := env.do(t, http.MethodPost, "/api/v1/watchlist", `{"symbol":"nvda"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "NVDA", decode[map[string]any](t, rec)["symbol"])

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/watchlist", `{"symbol":"NVDA"}`).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/api/v1/watchlist/msft", "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/v1/watchlist/ZZZZ", "").Code)
	assert.Equal(t, []string{"AAPL", "GOOGL", "TSLA", "NVDA"}, env.store.Watchlist())

	rec = env.do(t, http.MethodPut, "/api/v1/stocks/nvda", `{"price":900,"change":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "NVDA", decode[entities.StockData](t, rec).Symbol)

	rec = env.do(t, http.MethodPost, "/api/v1/stocks/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stored":3`)

	rec = env.do(t, http.MethodGet, "/api/v1/stocks", "")
	quotes := decode[[]entities.StockData](t, rec)
	require.Len(t, quotes, 4)
	assert.Equal(t, "NVDA", quotes[3].Symbol)

	rec = env.do(t, http.MethodPost, "/api/v1/portfolio/summary", `{"holdings":[{"symbol":"NVDA","shares":1,"avgPrice":800}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"gainLoss":100`)
}

func TestFeedRoutes(t *testing.T) {
	env := newTestEnv(t, storage.NewMemory())

	rec := env.do(t, http.MethodGet, "/api/v1/weather", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = env.do(t, http.MethodPost, "/api/v1/weather/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"applied":true}`, rec.Body.String())
	require.NotNil(t, env.store.Weather())

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/news/refresh", "").Code)
	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodPut, "/api/v1/news/category", `{"category":"technology"}`).Code)

	rec = env.do(t, http.MethodGet, "/api/v1/news", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var news struct {
		Category string              `json:"category"`
		Items    []entities.NewsItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &news))
	assert.Equal(t, "technology", news.Category)
	require.NotEmpty(t, news.Items)
	for _, item := range news.Items {
		assert.Equal(t, "technology", item.Category)
	}

	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodPut, "/api/v1/news", `[]`).Code)
	assert.Empty(t, env.store.News())
}

func TestCalendarRoute(t *testing.T) {
	env := newTestEnv(t, storage.NewMemory())
	env.do(t, http.MethodPost, "/api/v1/tasks", `{"title":"Leap","dueDate":"2024-02-29"}`)

	rec := env.do(t, http.MethodGet, "/api/v1/calendar?year=2024&month=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"daysInMonth":29`)
	assert.Contains(t, rec.Body.String(), `"Leap"`)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/calendar?month=13", "").Code)
}

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreObserver(t *testing.T) {
	m := New()

	m.MutationApplied("addTask")
	m.MutationApplied("addTask")
	m.PersistFinished("tasks", time.Millisecond, nil)
	m.PersistFinished("tasks", time.Millisecond, errors.New("quota"))
	m.FetchCommitted("stock:AAPL", true)
	m.FetchCommitted("stock:MSFT", false)
	m.FetchCommitted("weather", false)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.mutations.WithLabelValues("addTask")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.persistWrites.WithLabelValues("tasks", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.persistWrites.WithLabelValues("tasks", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fetchCommits.WithLabelValues("stock", "applied")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fetchCommits.WithLabelValues("stock", "stale")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fetchCommits.WithLabelValues("weather", "stale")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/v1/tasks/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	for _, id := range []string{"a", "b", "missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/"+id, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/tasks/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/tasks/:id", "404")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}

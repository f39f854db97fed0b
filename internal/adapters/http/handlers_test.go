package http

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/dashboard/internal/adapters/document"
	"github.com/taskmaster/dashboard/internal/adapters/storage"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

type structValidator struct{ v *validator.Validate }

func (s structValidator) Validate(i interface{}) error { return s.v.Struct(i) }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = structValidator{v: validator.New()}
	return e
}

func TestServiceError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: t1", entities.ErrTaskNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: w1", entities.ErrWidgetNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: IBM", entities.ErrSymbolNotWatched), http.StatusNotFound},
		{fmt.Errorf("%w: \"urgent\"", entities.ErrInvalidPriority), http.StatusBadRequest},
		{errors.New("title is required"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, serviceError(tt.err).Code)
		})
	}
}

func TestEventsStreamChanges(t *testing.T) {
	st := store.New(storage.NewMemory())
	h := NewDashboardHandler(services.NewDashboardService(st, logger.NewNop()), nil, logger.NewNop())

	e := newEcho()
	e.GET("/events", h.Events)
	srv := httptest.NewServer(e)
	defer srv.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(srv.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))

	r := bufio.NewReader(resp.Body)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)

	// The subscription is registered before the greeting is flushed.
	st.ToggleDarkMode()

	var data string
	for data == "" {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}

	var change ports.Change
	require.NoError(t, json.Unmarshal([]byte(data), &change))
	assert.Equal(t, ports.FieldDarkMode, change.Field)
	assert.Equal(t, "toggleDarkMode", change.Op)
	assert.Equal(t, uint64(1), change.Revision)
}

func TestDocumentWithoutRoot(t *testing.T) {
	st := store.New(storage.NewMemory())
	h := NewDashboardHandler(services.NewDashboardService(st, logger.NewNop()), nil, logger.NewNop())

	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/document", nil), rec)
	require.NoError(t, h.GetDocument(c))
	assert.JSONEq(t, `{"classList":[],"dark":false}`, rec.Body.String())
}

func TestDocumentReflectsTheme(t *testing.T) {
	root := document.NewRoot()
	st := store.New(storage.NewMemory(), store.WithThemeApplier(root))
	h := NewDashboardHandler(services.NewDashboardService(st, logger.NewNop()), root, logger.NewNop())
	e := newEcho()

	rec := httptest.NewRecorder()
	require.NoError(t, h.ToggleTheme(e.NewContext(httptest.NewRequest(http.MethodPost, "/theme/toggle", nil), rec)))
	assert.JSONEq(t, `{"darkMode":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, h.GetDocument(e.NewContext(httptest.NewRequest(http.MethodGet, "/document", nil), rec)))
	assert.JSONEq(t, `{"classList":["dark"],"dark":true}`, rec.Body.String())
}

func TestListTasksRejectsUnknownStatus(t *testing.T) {
	st := store.New(storage.NewMemory())
	h := NewTaskHandler(services.NewTaskService(st, logger.NewNop()), logger.NewNop())
	e := newEcho()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/tasks?status=archived", nil), httptest.NewRecorder())
	err := h.ListTasks(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

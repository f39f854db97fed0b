package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/dashboard/internal/adapters/document"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// eventBuffer bounds how many changes a slow SSE client may lag behind
// before further changes are dropped for it.
const eventBuffer = 64

// DashboardHandler handles whole-state, theme, widget and settings requests
type DashboardHandler struct {
	dashboardService *services.DashboardService
	root             *document.Root
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler. root may be nil when
// no document is attached.
func NewDashboardHandler(dashboardService *services.DashboardService, root *document.Root, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		root:             root,
		logger:           logger,
	}
}

// GetState returns the full snapshot
// @Summary Dashboard state
// @Tags State
// @Produce json
// @Success 200 {object} ports.Snapshot
// @Router /state [get]
func (h *DashboardHandler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.State())
}

// Events streams store changes as server-sent events until the client leaves.
// @Summary Change stream
// @Tags State
// @Produce text/event-stream
// @Router /events [get]
func (h *DashboardHandler) Events(c echo.Context) error {
	changes := make(chan ports.Change, eventBuffer)
	unsubscribe := h.dashboardService.Subscribe(func(change ports.Change) {
		select {
		case changes <- change:
		default:
		}
	})
	defer unsubscribe()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprint(res, ": connected\n\n"); err != nil {
		return nil
	}
	res.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case change := <-changes:
			if err := writeEvent(res, change); err != nil {
				h.logger.Debugw("Event stream closed", "error", err)
				return nil
			}
			res.Flush()
		case <-ctx.Done():
			return nil
		}
	}
}

func writeEvent(res *echo.Response, change ports.Change) error {
	data, err := json.Marshal(change)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(res, "id: %d\nevent: change\ndata: %s\n\n", change.Revision, data)
	return err
}

// GetDocument reports the root element's class list
// @Summary Document root classes
// @Tags Theme
// @Produce json
// @Success 200 {object} DocumentResponse
// @Router /document [get]
func (h *DashboardHandler) GetDocument(c echo.Context) error {
	resp := DocumentResponse{ClassList: []string{}}
	if h.root != nil {
		resp.ClassList = h.root.ClassList()
		resp.Dark = h.root.Has(document.DarkClass)
	}
	return c.JSON(http.StatusOK, resp)
}

// ToggleTheme flips dark mode
// @Summary Toggle dark mode
// @Tags Theme
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /theme/toggle [post]
func (h *DashboardHandler) ToggleTheme(c echo.Context) error {
	return c.JSON(http.StatusOK, ThemeResponse{DarkMode: h.dashboardService.ToggleTheme()})
}

// ListWidgets returns the widget layout
// @Summary List widgets
// @Tags Widgets
// @Produce json
// @Success 200 {array} entities.Widget
// @Router /widgets [get]
func (h *DashboardHandler) ListWidgets(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.Widgets())
}

// UpdateWidget merges a partial widget update
// @Summary Update widget
// @Tags Widgets
// @Accept json
// @Produce json
// @Param id path string true "Widget ID"
// @Param widget body ports.WidgetPatch true "Fields to change"
// @Success 200 {object} entities.Widget
// @Failure 404 {object} ErrorResponse
// @Router /widgets/{id} [patch]
func (h *DashboardHandler) UpdateWidget(c echo.Context) error {
	var req ports.WidgetPatch
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	widget, err := h.dashboardService.UpdateWidget(c.Param("id"), req)
	if err != nil {
		h.logger.Warnw("Update widget failed", "error", err, "widget_id", c.Param("id"))
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, widget)
}

// GetSettings returns the user profile
// @Summary User settings
// @Tags Settings
// @Produce json
// @Success 200 {object} entities.UserSettings
// @Router /settings [get]
func (h *DashboardHandler) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.Settings())
}

// UpdateSettings merges a partial profile update
// @Summary Update user settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body ports.SettingsPatch true "Fields to change"
// @Success 200 {object} entities.UserSettings
// @Router /settings [patch]
func (h *DashboardHandler) UpdateSettings(c echo.Context) error {
	var req ports.SettingsPatch
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, h.dashboardService.UpdateSettings(req))
}

// serviceError maps service errors onto HTTP status codes.
func serviceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrWidgetNotFound),
		errors.Is(err, entities.ErrSymbolNotWatched):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "Upstream timed out")
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

// Request/Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type DocumentResponse struct {
	ClassList []string `json:"classList"`
	Dark      bool     `json:"dark"`
}

type ThemeResponse struct {
	DarkMode bool `json:"darkMode"`
}

type WatchlistResponse struct {
	Symbol    string   `json:"symbol,omitempty"`
	Added     bool     `json:"added"`
	Watchlist []string `json:"watchlist"`
}

type NewsResponse struct {
	Category string              `json:"category"`
	Items    []entities.NewsItem `json:"items"`
}

type RefreshResponse struct {
	Applied bool `json:"applied"`
	Stored  int  `json:"stored,omitempty"`
}

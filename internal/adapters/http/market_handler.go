package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/dashboard/internal/application/insights"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// FeedHandler serves the weather, news and market widgets
type FeedHandler struct {
	dashboardService *services.DashboardService
	refreshService   *services.RefreshService
	logger           *logger.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(dashboardService *services.DashboardService, refreshService *services.RefreshService, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		dashboardService: dashboardService,
		refreshService:   refreshService,
		logger:           logger,
	}
}

// GetWeather returns the stored weather, null before the first load
// @Summary Current weather
// @Tags Weather
// @Produce json
// @Success 200 {object} entities.WeatherData
// @Router /weather [get]
func (h *FeedHandler) GetWeather(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.Weather())
}

// PutWeather replaces the weather payload
// @Summary Replace weather
// @Tags Weather
// @Accept json
// @Produce json
// @Param weather body entities.WeatherData true "Weather"
// @Success 200 {object} entities.WeatherData
// @Router /weather [put]
func (h *FeedHandler) PutWeather(c echo.Context) error {
	var data entities.WeatherData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	h.dashboardService.SetWeather(&data)
	return c.JSON(http.StatusOK, h.dashboardService.Weather())
}

// RefreshWeather fetches weather for the user's location
// @Summary Refresh weather
// @Tags Weather
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 502 {object} ErrorResponse
// @Router /weather/refresh [post]
func (h *FeedHandler) RefreshWeather(c echo.Context) error {
	applied, err := h.refreshService.RefreshWeather(c.Request().Context())
	if err != nil {
		return h.refreshError("weather", err)
	}
	return c.JSON(http.StatusOK, RefreshResponse{Applied: applied})
}

// GetNews returns headlines for the selected category
// @Summary News headlines
// @Tags News
// @Produce json
// @Param q query string false "Search title and description"
// @Param limit query int false "Maximum items, default 6"
// @Success 200 {object} NewsResponse
// @Router /news [get]
func (h *FeedHandler) GetNews(c echo.Context) error {
	limit := insights.DefaultNewsLimit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		limit = n
	}

	return c.JSON(http.StatusOK, NewsResponse{
		Category: h.dashboardService.SelectedNewsCategory(),
		Items:    h.dashboardService.News(c.QueryParam("q"), limit),
	})
}

// PutNews replaces the headline collection
// @Summary Replace news
// @Tags News
// @Accept json
// @Param news body []entities.NewsItem true "Headlines"
// @Success 204
// @Router /news [put]
func (h *FeedHandler) PutNews(c echo.Context) error {
	var items []entities.NewsItem
	if err := c.Bind(&items); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	h.dashboardService.SetNews(items)
	return c.NoContent(http.StatusNoContent)
}

// PutNewsCategory changes the active news filter
// @Summary Select news category
// @Tags News
// @Accept json
// @Param category body ports.NewsCategoryRequest true "Category"
// @Success 204
// @Router /news/category [put]
func (h *FeedHandler) PutNewsCategory(c echo.Context) error {
	var req ports.NewsCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.dashboardService.SetNewsCategory(req.Category)
	return c.NoContent(http.StatusNoContent)
}

// RefreshNews reloads headlines
// @Summary Refresh news
// @Tags News
// @Produce json
// @Success 200 {object} RefreshResponse
// @Router /news/refresh [post]
func (h *FeedHandler) RefreshNews(c echo.Context) error {
	applied, err := h.refreshService.RefreshNews(c.Request().Context())
	if err != nil {
		return h.refreshError("news", err)
	}
	return c.JSON(http.StatusOK, RefreshResponse{Applied: applied})
}

// GetWatchlist returns the tracked symbols
// @Summary Watchlist
// @Tags Stocks
// @Produce json
// @Success 200 {object} WatchlistResponse
// @Router /watchlist [get]
func (h *FeedHandler) GetWatchlist(c echo.Context) error {
	return c.JSON(http.StatusOK, WatchlistResponse{Watchlist: h.dashboardService.Watchlist()})
}

// AddToWatchlist tracks a symbol; adding a tracked symbol is not an error
// @Summary Add symbol
// @Tags Stocks
// @Accept json
// @Produce json
// @Param symbol body ports.WatchlistRequest true "Symbol"
// @Success 201 {object} WatchlistResponse
// @Success 200 {object} WatchlistResponse
// @Router /watchlist [post]
func (h *FeedHandler) AddToWatchlist(c echo.Context) error {
	var req ports.WatchlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	symbol, added, err := h.dashboardService.AddToWatchlist(req)
	if err != nil {
		return serviceError(err)
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	return c.JSON(status, WatchlistResponse{
		Symbol:    symbol,
		Added:     added,
		Watchlist: h.dashboardService.Watchlist(),
	})
}

// RemoveFromWatchlist stops tracking a symbol
// @Summary Remove symbol
// @Tags Stocks
// @Param symbol path string true "Ticker"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /watchlist/{symbol} [delete]
func (h *FeedHandler) RemoveFromWatchlist(c echo.Context) error {
	if err := h.dashboardService.RemoveFromWatchlist(c.Param("symbol")); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStocks returns quotes for watched symbols in watchlist order
// @Summary Quotes
// @Tags Stocks
// @Produce json
// @Success 200 {array} entities.StockData
// @Router /stocks [get]
func (h *FeedHandler) GetStocks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.dashboardService.StockData())
}

// PutStock stores a quote for one symbol
// @Summary Store quote
// @Tags Stocks
// @Accept json
// @Produce json
// @Param symbol path string true "Ticker"
// @Param quote body entities.StockData true "Quote"
// @Success 200 {object} entities.StockData
// @Router /stocks/{symbol} [put]
func (h *FeedHandler) PutStock(c echo.Context) error {
	var data entities.StockData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	quote, err := h.dashboardService.UpdateStockData(c.Param("symbol"), data)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, quote)
}

// RefreshStocks reloads quotes for the watchlist
// @Summary Refresh quotes
// @Tags Stocks
// @Produce json
// @Success 200 {object} RefreshResponse
// @Router /stocks/refresh [post]
func (h *FeedHandler) RefreshStocks(c echo.Context) error {
	stored, err := h.refreshService.RefreshStocks(c.Request().Context())
	if err != nil {
		return h.refreshError("stocks", err)
	}
	return c.JSON(http.StatusOK, RefreshResponse{Applied: stored > 0, Stored: stored})
}

// PortfolioSummary values holdings at the stored quotes
// @Summary Portfolio summary
// @Tags Stocks
// @Accept json
// @Produce json
// @Param portfolio body ports.PortfolioRequest true "Holdings"
// @Success 200 {object} insights.PortfolioSummary
// @Router /portfolio/summary [post]
func (h *FeedHandler) PortfolioSummary(c echo.Context) error {
	var req ports.PortfolioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, h.dashboardService.Portfolio(req))
}

func (h *FeedHandler) refreshError(feed string, err error) error {
	h.logger.Warnw("Refresh failed", "feed", feed, "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return echo.NewHTTPError(http.StatusGatewayTimeout, "Upstream timed out")
	}
	return echo.NewHTTPError(http.StatusBadGateway, "Failed to refresh "+feed)
}

package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/taskmaster/dashboard/docs"
	"github.com/taskmaster/dashboard/internal/adapters/document"
	httpHandlers "github.com/taskmaster/dashboard/internal/adapters/http"
	"github.com/taskmaster/dashboard/internal/application/services"
	"github.com/taskmaster/dashboard/internal/infrastructure/config"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/infrastructure/metrics"
	"github.com/taskmaster/dashboard/internal/ports"
)

const (
	requestTimeout = 30 * time.Second
	eventsPath     = "/api/v1/events"
)

// Dependencies are the long-lived components the server routes to.
type Dependencies struct {
	Store     ports.DashboardStore
	Storage   ports.Storage
	Document  *document.Root
	Refresher *services.RefreshService
	// Metrics may be nil; /metrics is only served when it is set and enabled.
	Metrics *metrics.Metrics
}

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	storage ports.Storage
	metrics *metrics.Metrics

	// cancel ends long-lived requests such as the event stream on shutdown
	cancel context.CancelFunc
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout
	baseCtx, cancel := context.WithCancel(context.Background())
	e.Server.BaseContext = func(net.Listener) context.Context { return baseCtx }

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize services
	taskService := services.NewTaskService(deps.Store, appLogger)
	dashboardService := services.NewDashboardService(deps.Store, appLogger)

	// Initialize handlers
	dashboardHandler := httpHandlers.NewDashboardHandler(dashboardService, deps.Document, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)
	feedHandler := httpHandlers.NewFeedHandler(dashboardService, deps.Refresher, appLogger)

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		storage: deps.Storage,
		metrics: deps.Metrics,
		cancel:  cancel,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics
	if cfg.Metrics.Enabled && deps.Metrics != nil {
		server.setupMetrics()
	}

	// Setup routes
	server.setupRoutes(dashboardHandler, taskHandler, feedHandler)

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(s.requestLogger())

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	if s.config.Security.RateLimitRequests > 0 {
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
			},
		}))
	}

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware; the event stream is long-lived and needs Flush
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == eventsPath
		},
		Timeout: requestTimeout,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(dashboardHandler *httpHandlers.DashboardHandler, taskHandler *httpHandlers.TaskHandler, feedHandler *httpHandlers.FeedHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	v1.GET("/state", dashboardHandler.GetState)
	v1.GET("/events", dashboardHandler.Events)
	v1.GET("/document", dashboardHandler.GetDocument)
	v1.POST("/theme/toggle", dashboardHandler.ToggleTheme)

	v1.GET("/widgets", dashboardHandler.ListWidgets)
	v1.PATCH("/widgets/:id", dashboardHandler.UpdateWidget)

	v1.GET("/settings", dashboardHandler.GetSettings)
	v1.PATCH("/settings", dashboardHandler.UpdateSettings)

	// Task routes
	taskGroup := v1.Group("/tasks")
	taskGroup.GET("", taskHandler.ListTasks)
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.GET("/stats", taskHandler.GetStats)
	taskGroup.GET("/reminders", taskHandler.GetReminders)
	taskGroup.GET("/:id", taskHandler.GetTask)
	taskGroup.PATCH("/:id", taskHandler.UpdateTask)
	taskGroup.POST("/:id/toggle", taskHandler.ToggleTask)
	taskGroup.DELETE("/:id", taskHandler.DeleteTask)

	v1.GET("/calendar", taskHandler.GetCalendar)

	// Feed routes
	v1.GET("/weather", feedHandler.GetWeather)
	v1.PUT("/weather", feedHandler.PutWeather)
	v1.POST("/weather/refresh", feedHandler.RefreshWeather)

	v1.GET("/news", feedHandler.GetNews)
	v1.PUT("/news", feedHandler.PutNews)
	v1.PUT("/news/category", feedHandler.PutNewsCategory)
	v1.POST("/news/refresh", feedHandler.RefreshNews)

	v1.GET("/watchlist", feedHandler.GetWatchlist)
	v1.POST("/watchlist", feedHandler.AddToWatchlist)
	v1.DELETE("/watchlist/:symbol", feedHandler.RemoveFromWatchlist)

	v1.GET("/stocks", feedHandler.GetStocks)
	v1.PUT("/stocks/:symbol", feedHandler.PutStock)
	v1.POST("/stocks/refresh", feedHandler.RefreshStocks)
	v1.POST("/portfolio/summary", feedHandler.PortfolioSummary)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	s.echo.Use(s.metrics.Middleware())
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	storageCheck := map[string]interface{}{
		"status": "ok",
		"driver": s.storage.Driver(),
	}
	if err := s.pingStorage(c.Request().Context()); err != nil {
		status = "error"
		storageCheck["status"] = "error"
		storageCheck["error"] = err.Error()
	}
	if pr, ok := s.storage.(ports.PoolReporter); ok {
		storageCheck["pool"] = pr.GetConnectionInfo()
	}
	checks["storage"] = storageCheck

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.pingStorage(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// pingStorage checks backends that sit behind a connection; the rest are
// always ready.
func (s *Server) pingStorage(ctx context.Context) error {
	hc, ok := s.storage.(ports.HealthChecker)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return hc.HealthCheck(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	s.cancel()
	return s.echo.Shutdown(ctx)
}

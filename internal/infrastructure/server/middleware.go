package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
)

// requestLogger logs every request with its request ID once the handler chain returns.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			l := s.logger
			if values.RequestID != "" {
				l = l.WithRequestID(values.RequestID)
			}
			l.LogHTTPRequest(
				values.Method,
				values.URI,
				values.UserAgent,
				values.RemoteIP,
				values.Status,
				float64(values.Latency.Nanoseconds())/1000000,
				values.Error,
			)
			return nil
		},
	})
}

// statusFor maps errors that reach the error handler without being
// converted by a handler.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrWidgetNotFound),
		errors.Is(err, entities.ErrSymbolNotWatched):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidPriority),
		errors.Is(err, entities.ErrInvalidDueDate),
		errors.Is(err, entities.ErrInvalidSymbol),
		errors.Is(err, entities.ErrInvalidWidgetType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = map[string]interface{}{"message": he.Message}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else {
			code = statusFor(err)
			if code == http.StatusInternalServerError {
				msg = map[string]string{"message": http.StatusText(code)}
			} else {
				msg = map[string]string{"message": err.Error()}
			}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}

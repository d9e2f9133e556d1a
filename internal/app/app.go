// Package app is the application bootstrap and dependency injection root.
// It holds the shared infrastructure (DB pool, Redis client, Echo instance)
// and wires the plugins together.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/config"
	"github.com/keyxmakerx/timeline/internal/middleware"
)

// App holds all shared dependencies and the Echo HTTP server instance.
type App struct {
	Config *config.Config

	// DB is the MariaDB connection pool shared by all plugins.
	DB *sql.DB

	// Redis backs the read cache. Nil when Redis is not configured.
	Redis *redis.Client

	Echo *echo.Echo

	// ctx scopes background work started while wiring routes, such as
	// the admin rate limiter's sweep. Shutdown cancels it.
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling.
func New(cfg *config.Config, db *sql.DB, rdb *redis.Client) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Trust forwarding headers from the reverse proxy's networks so
	// c.RealIP() is the client's address.
	middleware.TrustedProxies(e, []string{
		"127.0.0.0/8",
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fd00::/8",
	})

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Echo:   e,
		ctx:    ctx,
		cancel: cancel,
	}

	app.setupMiddleware()
	e.HTTPErrorHandler = app.errorHandler

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: recovery is outermost.
func (a *App) setupMiddleware() {
	a.Echo.Use(middleware.Recovery())
	a.Echo.Use(middleware.RequestLogger())
	a.Echo.Use(middleware.SecurityHeaders())

	// The timeline viewer is served from BaseURL and fetches every read
	// endpoint cross-origin.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   []string{a.Config.BaseURL},
		AllowCredentials: true,
	}))
}

// errorHandler is the custom Echo error handler. Every error, including
// the router's own 404/405, is answered as JSON {"error", "message"}.
// Internal causes are logged, never returned.
func (a *App) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := resolveError(err, c)
	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}
	c.JSON(code, map[string]string{
		"error":   http.StatusText(code),
		"message": message,
	})
}

// resolveError maps err to a status code and client-safe message.
func resolveError(err error, c echo.Context) (int, string) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
			)
		}
		return appErr.Code, appErr.Message
	}

	// Echo's built-in HTTP errors (router 404, body limit 413, ...).
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok {
			return echoErr.Code, msg
		}
		return echoErr.Code, defaultErrorMessage(echoErr.Code)
	}

	slog.Error("unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
	)
	return http.StatusInternalServerError, defaultErrorMessage(http.StatusInternalServerError)
}

// defaultErrorMessage returns a message for status codes that arrive
// without one.
func defaultErrorMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "the request was invalid or cannot be processed"
	case http.StatusUnauthorized:
		return "authentication required"
	case http.StatusNotFound:
		return "not found"
	case http.StatusMethodNotAllowed:
		return "method not allowed"
	case http.StatusRequestEntityTooLarge:
		return "request body too large"
	case http.StatusTooManyRequests:
		return "too many requests"
	default:
		return "an unexpected error occurred"
	}
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting timeline server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
	)
	return a.Echo.Start(addr)
}

// Shutdown stops background work and gracefully stops the HTTP server,
// waiting for in-flight requests until ctx expires.
func (a *App) Shutdown(ctx context.Context) error {
	a.cancel()
	return a.Echo.Shutdown(ctx)
}

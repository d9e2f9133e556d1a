package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/middleware"
)

// Prefix is where the admin write API is mounted.
const Prefix = "/admin/api"

// NewGroup creates the authenticated, rate-limited admin group. It returns
// nil when no token hash is configured; callers then skip registering
// admin routes, so the whole API answers 404. The rate limiter's
// background sweep stops when ctx is done.
func NewGroup(ctx context.Context, e *echo.Echo, tokenHash string) *echo.Group {
	if tokenHash == "" {
		slog.Info("admin API disabled: ADMIN_TOKEN_HASH not set")
		return nil
	}
	return e.Group(Prefix,
		middleware.RateLimit(ctx, 60, time.Minute),
		RequireToken(tokenHash),
	)
}

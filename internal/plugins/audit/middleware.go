package audit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// logTimeout bounds the insert made after the response is written.
const logTimeout = 5 * time.Second

// Record returns middleware that logs every successful write on the group
// it is attached to. prefix is stripped from the matched route before the
// action is derived. Reads and failed writes are not recorded.
func Record(svc AuditService, prefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			req := c.Request()
			action := ActionFor(req.Method, strings.TrimPrefix(c.Path(), prefix))
			status := c.Response().Status
			if err != nil || action == "" || status >= 400 {
				return err
			}

			// The request context may already be cancelled once the client
			// has its response.
			ctx, cancel := context.WithTimeout(context.WithoutCancel(req.Context()), logTimeout)
			defer cancel()

			entry := &Entry{
				Action:     action,
				Method:     req.Method,
				Path:       req.URL.Path,
				ResourceID: c.Param("id"),
				Status:     status,
				RemoteIP:   c.RealIP(),
			}
			if logErr := svc.Log(ctx, entry); logErr != nil {
				slog.Warn("audit entry dropped", slog.String("action", action), slog.Any("error", logErr))
			}
			return nil
		}
	}
}

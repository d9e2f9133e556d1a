// Package admin guards the write API. A single operator token is configured
// as a bcrypt hash; requests present the raw token as a Bearer credential.
package admin

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// RequireToken returns middleware that authenticates requests against
// tokenHash. Extracts the token from the Authorization header and verifies
// it with bcrypt.
func RequireToken(tokenHash string) echo.MiddlewareFunc {
	hash := []byte(tokenHash)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperror.NewUnauthorized("admin token required")
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader || token == "" {
				return apperror.NewUnauthorized("invalid authorization format, use: Bearer <token>")
			}

			if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
				slog.Warn("admin auth failure",
					slog.String("ip", c.RealIP()),
					slog.String("path", c.Request().URL.Path),
				)
				return apperror.NewUnauthorized("invalid admin token")
			}
			return next(c)
		}
	}
}

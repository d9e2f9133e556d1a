package media

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts public file serving under mediaURL.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET(h.mediaURL+"/*", h.Serve)
}

// RegisterAdminRoutes mounts the upload endpoint on the authenticated admin
// group. maxUploadSize limits the request body before it is read into memory.
func RegisterAdminRoutes(admin *echo.Group, h *Handler, maxUploadSize int64) {
	// 10% margin for multipart encoding overhead.
	bodyLimit := bodyLimitMiddleware(maxUploadSize + maxUploadSize/10)
	admin.POST("/images", h.Upload, bodyLimit)
}

// bodyLimitMiddleware rejects request bodies exceeding maxBytes.
func bodyLimitMiddleware(maxBytes int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().ContentLength > maxBytes {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body too large; maximum is %d MB", maxBytes/(1024*1024)))
			}
			c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxBytes)
			return next(c)
		}
	}
}

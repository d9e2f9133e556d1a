package timelines

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// contextKeyTimeline is the Echo context key for the resolved Meta.
const contextKeyTimeline = "timeline_meta"

// RequireTimeline returns middleware that resolves the :slug route
// parameter to registered timeline metadata and stores it in the Echo
// context. Unknown slugs end the request with 404.
func RequireTimeline(service TimelineService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			slug := c.Param("slug")
			if slug == "" {
				return apperror.NewNotFound("timeline not found")
			}

			meta, err := service.GetBySlug(c.Request().Context(), slug)
			if err != nil {
				return err
			}

			c.Set(contextKeyTimeline, meta)
			return next(c)
		}
	}
}

// GetTimeline returns the Meta set by RequireTimeline, or nil.
func GetTimeline(c echo.Context) *Meta {
	meta, ok := c.Get(contextKeyTimeline).(*Meta)
	if !ok {
		return nil
	}
	return meta
}

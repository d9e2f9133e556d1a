package events

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
)

// RegisterRoutes mounts the event read endpoints behind timeline resolution.
func RegisterRoutes(e *echo.Echo, h *Handler, timelineSvc timelines.TimelineService) {
	g := e.Group("", timelines.RequireTimeline(timelineSvc))
	g.GET("/events/:slug", h.Export)
	g.GET("/event/:id/:slug", h.Detail)
	g.GET("/years/:slug", h.Years)
}

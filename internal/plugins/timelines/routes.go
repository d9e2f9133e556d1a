package timelines

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the metadata endpoints. All are public reads
// scoped to a registered timeline.
func RegisterRoutes(e *echo.Echo, h *Handler, service TimelineService) {
	g := e.Group("", RequireTimeline(service))
	g.GET("/meta/:slug", h.Meta)
	g.GET("/themes/:slug", h.Themes)
	g.GET("/year-settings/:slug", h.YearSettings)
}

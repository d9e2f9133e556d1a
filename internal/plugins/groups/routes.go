package groups

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
)

// RegisterRoutes mounts the public group listings, scoped to a timeline.
func RegisterRoutes(e *echo.Echo, h *Handler, timelineSvc timelines.TimelineService) {
	g := e.Group("", timelines.RequireTimeline(timelineSvc))
	g.GET("/groups/:slug", h.Groups)
	g.GET("/groups-by-region/:slug", h.GroupsByRegion)
}

// RegisterAdminRoutes mounts the group write endpoints on the admin group.
func RegisterAdminRoutes(admin *echo.Group, h *Handler) {
	admin.POST("/groups", h.Create)
	admin.PUT("/groups/:id", h.Update)
}

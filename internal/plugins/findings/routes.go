package findings

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
)

// RegisterRoutes mounts the findings endpoint behind timeline resolution.
func RegisterRoutes(e *echo.Echo, h *Handler, timelineSvc timelines.TimelineService) {
	e.GET("/findings/:slug", h.List, timelines.RequireTimeline(timelineSvc))
}

// RegisterAdminRoutes mounts finding writes on the authenticated admin
// group.
func RegisterAdminRoutes(admin *echo.Group, h *Handler) {
	admin.POST("/findings", h.Create)
	admin.PUT("/findings/:id", h.Update)
	admin.DELETE("/findings/:id", h.Delete)
}

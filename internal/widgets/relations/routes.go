package relations

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the relationship editor on the admin group.
func RegisterRoutes(admin *echo.Group, h *Handler) {
	admin.GET("/events/:id/relationships", h.List)
	admin.POST("/relationships", h.Create)
	admin.DELETE("/relationships/:id", h.Delete)
}

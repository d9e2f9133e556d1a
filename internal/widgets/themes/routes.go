package themes

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts theme management on the authenticated admin group.
func RegisterRoutes(admin *echo.Group, h *Handler) {
	admin.GET("/themes", h.List)
	admin.POST("/themes", h.Create)
	admin.PUT("/themes/:id", h.Update)
	admin.DELETE("/themes/:id", h.Delete)

	admin.GET("/events/:id/themes", h.EventThemes)
	admin.PUT("/events/:id/themes", h.SetEventThemes)
}

package audit

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the audit feed on the authenticated admin group.
func RegisterRoutes(admin *echo.Group, h *Handler) {
	admin.GET("/audit", h.List)
}

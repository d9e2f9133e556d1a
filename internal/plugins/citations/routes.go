package citations

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the citation write endpoints on the admin group.
// The group carries admin authentication.
func RegisterRoutes(admin *echo.Group, h *Handler) {
	admin.POST("/citations", h.Create)
	admin.PUT("/citations/:id", h.Update)
}

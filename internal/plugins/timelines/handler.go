package timelines

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// Handler serves the timeline metadata endpoints.
type Handler struct {
	service TimelineService
}

// NewHandler creates a timelines handler.
func NewHandler(service TimelineService) *Handler {
	return &Handler{service: service}
}

// Meta returns the timeline's metadata (GET /meta/:slug).
func (h *Handler) Meta(c echo.Context) error {
	meta := GetTimeline(c)
	if meta == nil {
		return apperror.NewMissingContext()
	}
	return c.JSON(http.StatusOK, meta)
}

// Themes returns the theme slug -> name map (GET /themes/:slug).
func (h *Handler) Themes(c echo.Context) error {
	meta := GetTimeline(c)
	if meta == nil {
		return apperror.NewMissingContext()
	}
	themes, err := h.service.Themes(c.Request().Context(), meta.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themes)
}

// YearSettings returns the min/max year toggles (GET /year-settings/:slug).
func (h *Handler) YearSettings(c echo.Context) error {
	if GetTimeline(c) == nil {
		return apperror.NewMissingContext()
	}
	return c.JSON(http.StatusOK, h.service.YearSettings())
}

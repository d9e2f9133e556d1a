package events

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
)

// Handler serves the event endpoints. Thin: parse params, call service,
// render JSON.
type Handler struct {
	service EventService
}

// NewHandler creates an events handler.
func NewHandler(service EventService) *Handler {
	return &Handler{service: service}
}

// Export returns the timeline's static events export verbatim
// (GET /events/:slug).
func (h *Handler) Export(c echo.Context) error {
	meta := timelines.GetTimeline(c)
	if meta == nil {
		return apperror.NewMissingContext()
	}
	data, err := h.service.ReadExport(meta.Slug)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

// Detail returns one event with its related events (GET /event/:id/:slug).
func (h *Handler) Detail(c echo.Context) error {
	if timelines.GetTimeline(c) == nil {
		return apperror.NewMissingContext()
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid event id")
	}
	detail, err := h.service.GetDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Years returns the distinct years of the timeline (GET /years/:slug).
func (h *Handler) Years(c echo.Context) error {
	meta := timelines.GetTimeline(c)
	if meta == nil {
		return apperror.NewMissingContext()
	}
	years, err := h.service.Years(c.Request().Context(), meta.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, years)
}

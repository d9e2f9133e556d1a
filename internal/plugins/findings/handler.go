package findings

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
)

// Handler serves the findings endpoint.
type Handler struct {
	service FindingService
}

// NewHandler creates a findings handler.
func NewHandler(service FindingService) *Handler {
	return &Handler{service: service}
}

// List returns the timeline's findings (GET /findings/:slug).
func (h *Handler) List(c echo.Context) error {
	meta := timelines.GetTimeline(c)
	if meta == nil {
		return apperror.NewMissingContext()
	}
	list, err := h.service.ListByTimeline(c.Request().Context(), meta.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Create adds a finding (POST /admin/api/findings).
func (h *Handler) Create(c echo.Context) error {
	var req SaveFindingRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	f, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, f)
}

// Update replaces a finding and its event links
// (PUT /admin/api/findings/:id).
func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid finding ID")
	}

	var req SaveFindingRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	f, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// Delete removes a finding (DELETE /admin/api/findings/:id).
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid finding ID")
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

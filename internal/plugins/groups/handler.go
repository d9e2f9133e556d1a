package groups

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
)

// Handler serves group listings and the admin group endpoints.
type Handler struct {
	service GroupService
}

// NewHandler creates a groups handler.
func NewHandler(service GroupService) *Handler {
	return &Handler{service: service}
}

// Groups returns [slug, name] pairs (GET /groups/:slug).
func (h *Handler) Groups(c echo.Context) error {
	meta := timelines.GetTimeline(c)
	if meta == nil {
		return apperror.NewMissingContext()
	}
	pairs, err := h.service.Pairs(c.Request().Context(), meta.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pairs)
}

// GroupsByRegion returns regions with nested groups (GET /groups-by-region/:slug).
func (h *Handler) GroupsByRegion(c echo.Context) error {
	meta := timelines.GetTimeline(c)
	if meta == nil {
		return apperror.NewMissingContext()
	}
	regions, err := h.service.ByRegion(c.Request().Context(), meta.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regions)
}

// Create saves a new group (POST /admin/api/groups).
func (h *Handler) Create(c echo.Context) error {
	var req SaveGroupRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}
	g, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, g.AsJSON())
}

// Update saves changes to a group (PUT /admin/api/groups/:id).
func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid group ID")
	}
	var req SaveGroupRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}
	g, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g.AsJSON())
}

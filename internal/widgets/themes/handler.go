package themes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// Handler handles admin requests for themes. Handlers are thin: bind
// request, call service, render response.
type Handler struct {
	service ThemeService
}

// NewHandler creates a new theme handler backed by the given service.
func NewHandler(service ThemeService) *Handler {
	return &Handler{service: service}
}

// List returns every theme (GET /admin/api/themes).
func (h *Handler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Create adds a theme (POST /admin/api/themes).
func (h *Handler) Create(c echo.Context) error {
	var req SaveThemeRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	theme, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, theme)
}

// Update renames a theme (PUT /admin/api/themes/:id).
func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid theme ID")
	}

	var req SaveThemeRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	theme, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, theme)
}

// Delete removes a theme (DELETE /admin/api/themes/:id).
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid theme ID")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// EventThemes lists the themes on an event
// (GET /admin/api/events/:id/themes).
func (h *Handler) EventThemes(c echo.Context) error {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid event ID")
	}

	list, err := h.service.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// SetEventThemes replaces the themes on an event
// (PUT /admin/api/events/:id/themes).
func (h *Handler) SetEventThemes(c echo.Context) error {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid event ID")
	}

	var req SetEventThemesRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	list, err := h.service.SetEventThemes(c.Request().Context(), eventID, req.ThemeIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

package relations

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// Handler handles admin requests for event relationships. Thin: bind
// request, call service, render response.
type Handler struct {
	service RelationshipService
}

// NewHandler creates a relationships handler.
func NewHandler(service RelationshipService) *Handler {
	return &Handler{service: service}
}

// List returns the relationships touching an event
// (GET /admin/api/events/:id/relationships).
func (h *Handler) List(c echo.Context) error {
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

// Create links two events (POST /admin/api/relationships).
func (h *Handler) Create(c echo.Context) error {
	var req CreateRelationshipRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}
	rel, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rel)
}

// Delete removes a relationship (DELETE /admin/api/relationships/:id).
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid relationship ID")
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

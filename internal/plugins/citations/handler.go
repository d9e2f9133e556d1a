package citations

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// Handler serves the admin citation endpoints. Handlers are thin: bind,
// call the service, render.
type Handler struct {
	service CitationService
}

// NewHandler creates a citations handler.
func NewHandler(service CitationService) *Handler {
	return &Handler{service: service}
}

// Create saves a new citation (POST /admin/api/citations).
func (h *Handler) Create(c echo.Context) error {
	var req SaveCitationRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	citation, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, citation.AsJSON())
}

// Update saves changes to a citation (PUT /admin/api/citations/:id).
func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperror.NewBadRequest("invalid citation ID")
	}

	var req SaveCitationRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return apperror.NewBadRequest("invalid JSON body")
	}

	citation, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, citation.AsJSON())
}

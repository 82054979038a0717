package handler

import (
	"net/http" // http defines status code constants
	"strconv"  // strconv parses URL parameters to numbers
	"strings"  // strings manipulates and trims text

	"github.com/labstack/echo/v4"

	"github.com/scolarite/exam-scheduling/internal/model"
)

// CreateLocation handles POST /v1/locations and registers an exam venue.
func (h *AdminHandler) CreateLocation(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Capacity int    `json:"capacity"`
		Type     string `json:"type"` // AMPHI or ROOM, defaults to ROOM
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	loc := &model.Location{
		Name:     strings.TrimSpace(body.Name),
		Capacity: body.Capacity,
		Type:     strings.ToUpper(strings.TrimSpace(body.Type)),
	}
	if loc.Type != "" && loc.Type != model.LocationTypeAmphi && loc.Type != model.LocationTypeRoom {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "type must be AMPHI or ROOM"})
	}
	if err := h.Locations.Create(c.Request().Context(), loc); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, loc)
}

// ListLocations handles GET /v1/locations. The order is the numeric-aware
// name order the planner's range selection works on, so the UI must
// present it unchanged.
func (h *AdminHandler) ListLocations(c echo.Context) error {
	locations, err := h.Locations.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if locations == nil {
		locations = []model.Location{}
	}
	return c.JSON(http.StatusOK, locations)
}

// DeleteLocation handles DELETE /v1/locations/:id. Venues referenced by
// committed sessions cannot be removed.
func (h *AdminHandler) DeleteLocation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Locations.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

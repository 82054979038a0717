package handler // handler defines http handlers for the exam scheduling admin API

import (
	"errors"   // errors provides As/Is for typed error mapping
	"net/http" // http defines status code constants

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/scolarite/exam-scheduling/internal/planner"
	"github.com/scolarite/exam-scheduling/internal/refresh"
	"github.com/scolarite/exam-scheduling/internal/repository"
)

// AdminHandler bundles the repositories and services behind the
// scolarité back-office endpoints.
type AdminHandler struct {
	Locations *repository.LocationRepo
	Sessions  *repository.SessionRepo
	Roster    *repository.RosterRepo
	Refresher *refresh.Refresher
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(locations *repository.LocationRepo, sessions *repository.SessionRepo, roster *repository.RosterRepo, refresher *refresh.Refresher) *AdminHandler {
	if locations == nil || sessions == nil || roster == nil || refresher == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{
		Locations: locations,
		Sessions:  sessions,
		Roster:    roster,
		Refresher: refresher,
	}
}

// adminID extracts the caller identity stored by the auth middleware.
// The identity is opaque to the engine and only travels into audit
// fields of published events.
func adminID(c echo.Context) string {
	if v, ok := c.Get("admin_id").(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// respondError maps domain and repository errors onto HTTP responses.
// Planner violations are recoverable, so the payload keeps the detail
// the caller needs to correct the plan (duplicate names, shortfall,
// missing fields) instead of a generic message.
func respondError(c echo.Context, err error) error {
	var dup *planner.DuplicateLocationError
	if errors.As(err, &dup) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "duplicate locations in plan", "locations": dup.Names})
	}
	var inc *planner.IncompletePlanError
	if errors.As(err, &inc) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":       inc.Error(),
			"assigned":    inc.Assigned,
			"cohort_size": inc.CohortSize,
			"missing":     inc.Missing,
		})
	}
	var pe *planner.PlanningError
	if errors.As(err, &pe) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": pe.Error()})
	}
	var ve *planner.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error()})
	}
	switch {
	case errors.Is(err, repository.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrLocationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	case errors.Is(err, repository.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	case errors.Is(err, repository.ErrDuplicateSession):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/scolarite/exam-scheduling/internal/conflict"
	"github.com/scolarite/exam-scheduling/internal/model"
	"github.com/scolarite/exam-scheduling/internal/repository"
)

// ListConflicts handles GET /v1/conflicts. It runs detection over the
// committed sessions (optionally restricted with from/to date query
// parameters) and returns one entry per student per overlapping pair,
// with both sides summarized so the admin can decide which to move.
func (h *AdminHandler) ListConflicts(c echo.Context) error {
	sessions, err := h.sessionsInRange(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	conflicts := conflict.Detect(sessions)
	if conflicts == nil {
		conflicts = []model.Conflict{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"conflict_count": len(conflicts),
		"conflicts":      conflicts,
	})
}

// CountConflicts handles GET /v1/conflicts/count, the cheap badge
// endpoint: distinct students with at least one overlap.
func (h *AdminHandler) CountConflicts(c echo.Context) error {
	sessions, err := h.sessionsInRange(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"affected_students": conflict.Count(sessions),
	})
}

func (h *AdminHandler) sessionsInRange(c echo.Context) ([]model.ExamSession, error) {
	return h.Sessions.List(c.Request().Context(), repository.ListFilter{
		FromDate: strings.TrimSpace(c.QueryParam("from")),
		ToDate:   strings.TrimSpace(c.QueryParam("to")),
	})
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scolarite/exam-scheduling/internal/model"
	"github.com/scolarite/exam-scheduling/internal/refresh"
)

// RefreshParticipants handles POST /v1/refresh. It reconciles the
// assigned-student lists of upcoming sessions against current
// enrollment, then runs a detection pass so membership changes surface
// new conflicts immediately. as_of_date defaults to today (UTC); past
// sessions are never rewritten.
func (h *AdminHandler) RefreshParticipants(c echo.Context) error {
	var body struct {
		AsOfDate string `json:"as_of_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	asOf := strings.TrimSpace(body.AsOfDate)
	if asOf == "" {
		asOf = time.Now().UTC().Format(model.DateLayout)
	} else if _, err := time.Parse(model.DateLayout, asOf); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "as_of_date must be YYYY-MM-DD"})
	}

	report, err := h.Refresher.Refresh(c.Request().Context(), asOf)
	if err != nil {
		return respondError(c, err)
	}
	if report.Mismatches == nil {
		report.Mismatches = []refresh.Mismatch{}
	}

	affected := h.publishConflicts(c, "refresh")

	return c.JSON(http.StatusOK, echo.Map{
		"as_of_date":        asOf,
		"updated_count":     report.UpdatedCount,
		"mismatches":        report.Mismatches,
		"conflict_students": affected,
	})
}

package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/scolarite/exam-scheduling/internal/model"
	"github.com/scolarite/exam-scheduling/internal/repository"
)

// ListSessions handles GET /v1/sessions. Optional query parameters
// from, to (dates) and module narrow the result; sessions come back
// ordered by date then start time with their assigned-student codes.
func (h *AdminHandler) ListSessions(c echo.Context) error {
	filter := repository.ListFilter{
		FromDate:   strings.TrimSpace(c.QueryParam("from")),
		ToDate:     strings.TrimSpace(c.QueryParam("to")),
		ModuleCode: strings.TrimSpace(c.QueryParam("module")),
	}
	sessions, err := h.Sessions.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	if sessions == nil {
		sessions = []model.ExamSession{}
	}
	return c.JSON(http.StatusOK, sessions)
}

// GetSession handles GET /v1/sessions/:id.
func (h *AdminHandler) GetSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	session, err := h.Sessions.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

// DeleteSession handles DELETE /v1/sessions/:id. The session and its
// assignment rows go together; students seated in the removed room are
// simply no longer scheduled for that exam.
func (h *AdminHandler) DeleteSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Sessions.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

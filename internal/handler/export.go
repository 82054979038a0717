package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/scolarite/exam-scheduling/internal/repository"
)

// ExportSessions handles GET /v1/sessions/export and streams the
// schedule as CSV, one row per seated student, for convocation mailing
// and door lists. The from/to/module query parameters narrow the range
// the same way the list endpoint does. Student names come from the
// enrollment tables; codes with no matching student row (purged after
// commit) export with empty name columns rather than failing the file.
func (h *AdminHandler) ExportSessions(c echo.Context) error {
	ctx := c.Request().Context()
	sessions, err := h.Sessions.List(ctx, repository.ListFilter{
		FromDate:   strings.TrimSpace(c.QueryParam("from")),
		ToDate:     strings.TrimSpace(c.QueryParam("to")),
		ModuleCode: strings.TrimSpace(c.QueryParam("module")),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	var codes []string
	seen := map[string]bool{}
	for _, s := range sessions {
		for _, code := range s.AssignedStudents {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	students, err := h.Roster.Lookup(ctx, codes)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="exam_sessions.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	header := []string{"session_id", "module_code", "module_name", "group_name",
		"exam_date", "start_time", "end_time", "location_name", "professor_name",
		"cod_etu", "nom", "prenom"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range sessions {
		base := []string{
			strconv.FormatUint(s.ID, 10), s.ModuleCode, s.ModuleName, s.GroupName,
			s.ExamDate, s.StartTime, s.EndTime, s.LocationName, s.ProfessorName,
		}
		for _, code := range s.AssignedStudents {
			ref := students[code]
			row := append(append([]string(nil), base...), code, ref.Nom, ref.Prenom)
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

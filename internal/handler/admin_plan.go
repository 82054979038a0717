package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scolarite/exam-scheduling/internal/conflict"
	"github.com/scolarite/exam-scheduling/internal/model"
	"github.com/scolarite/exam-scheduling/internal/planner"
	"github.com/scolarite/exam-scheduling/internal/queue"
	"github.com/scolarite/exam-scheduling/internal/repository"
	queuepublisher "github.com/scolarite/exam-scheduling/internal/service"
)

// PreviewRoster handles POST /v1/roster and returns the merged,
// de-duplicated cohort for a set of module/group selections. The UI
// shows this before planning so the admin sees who will be seated.
func (h *AdminHandler) PreviewRoster(c echo.Context) error {
	var body struct {
		Selections []planner.Selection `json:"selections"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	cohort, err := planner.BuildCohort(c.Request().Context(), h.Roster, body.Selections)
	if err != nil {
		return respondError(c, err)
	}
	if cohort == nil {
		cohort = planner.Cohort{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cohort_size": len(cohort),
		"students":    cohort,
	})
}

// AutoPlan handles POST /v1/plans/auto. It builds the cohort for the
// given selections and distributes it over the contiguous range of
// locations between from_location and to_location (inclusive, in
// numeric-aware name order; empty bounds extend to the ends of the
// list). The response is a preview: nothing is persisted.
func (h *AdminHandler) AutoPlan(c echo.Context) error {
	var body struct {
		Selections   []planner.Selection `json:"selections"`
		FromLocation string              `json:"from_location"`
		ToLocation   string              `json:"to_location"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	ctx := c.Request().Context()

	cohort, err := planner.BuildCohort(ctx, h.Roster, body.Selections)
	if err != nil {
		return respondError(c, err)
	}

	locations, err := h.Locations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	rng, err := locationRange(locations, body.FromLocation, body.ToLocation)
	if err != nil {
		return respondError(c, err)
	}

	dist, err := planner.AutoDistribute(len(cohort), rng)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cohort_size": len(cohort),
		"slots":       dist.Slots,
		"shortfall":   dist.Shortfall,
	})
}

// slotRequest is one plan row as submitted by the UI. Capacity is
// resolved server-side from the registry; only the name travels.
type slotRequest struct {
	LocationName  string `json:"location_name"`
	Count         int    `json:"count"`
	ProfessorName string `json:"professor_name"`
}

// CommitPlan handles POST /v1/plans/commit. The whole plan is validated
// before any session is created; commit is all-or-nothing. On success
// the created sessions are returned, a plan-committed event is
// published, and a detection pass over the full session set reports any
// new conflicts.
func (h *AdminHandler) CommitPlan(c echo.Context) error {
	var body struct {
		Selections []planner.Selection `json:"selections"`
		ExamDate   string              `json:"exam_date"`
		StartTime  string              `json:"start_time"`
		EndTime    string              `json:"end_time"`
		Slots      []slotRequest       `json:"slots"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	ctx := c.Request().Context()

	cohort, err := planner.BuildCohort(ctx, h.Roster, body.Selections)
	if err != nil {
		return respondError(c, err)
	}

	plan, err := h.buildPlan(c, body.Selections, body.ExamDate, body.StartTime, body.EndTime, body.Slots, len(cohort))
	if err != nil {
		return respondError(c, err)
	}

	sessions, err := planner.Commit(ctx, h.Sessions, plan, cohort)
	if err != nil {
		return respondError(c, err)
	}

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	ev := queue.PlanCommittedEvent{
		ModuleCode:    plan.ModuleCode,
		ModuleName:    plan.ModuleName,
		GroupName:     plan.GroupName,
		ExamDate:      plan.ExamDate,
		StartTime:     plan.StartTime,
		EndTime:       plan.EndTime,
		TotalStudents: plan.CohortSize,
		CommittedBy:   adminID(c),
		CommittedAt:   now,
	}
	for _, s := range sessions {
		ev.Sessions = append(ev.Sessions, queue.CommittedSessionInfo{
			SessionID:    s.ID,
			LocationName: s.LocationName,
			Count:        len(s.AssignedStudents),
		})
	}
	// Event delivery must not fail the commit; the sessions are already
	// persisted.
	_ = queuepublisher.PublishPlanCommitted(ctx, ev)

	conflictCount := h.publishConflicts(c, "commit")

	return c.JSON(http.StatusCreated, echo.Map{
		"sessions":          sessions,
		"conflict_students": conflictCount,
	})
}

// buildPlan assembles the transient plan aggregate from the request:
// merged labels from the selections, server-resolved locations, and the
// cohort size the slots must cover.
func (h *AdminHandler) buildPlan(c echo.Context, selections []planner.Selection, date, start, end string, slots []slotRequest, cohortSize int) (*planner.Plan, error) {
	ctx := c.Request().Context()

	var codes, names, groups []string
	for _, sel := range selections {
		codes = append(codes, sel.ModuleCode)
		name, err := h.Roster.ModuleName(ctx, sel.ModuleCode)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		groups = append(groups, sel.GroupName)
	}

	plan := &planner.Plan{
		ModuleCode: planner.CombineCodes(codes),
		ModuleName: planner.CombineNames(names),
		GroupName:  planner.CombineGroups(groups),
		ExamDate:   strings.TrimSpace(date),
		StartTime:  strings.TrimSpace(start),
		EndTime:    strings.TrimSpace(end),
		CohortSize: cohortSize,
	}
	for _, sr := range slots {
		loc, err := h.Locations.GetByName(ctx, strings.TrimSpace(sr.LocationName))
		if err != nil {
			return nil, err
		}
		plan.Slots = append(plan.Slots, planner.Slot{
			Location:      *loc,
			Count:         sr.Count,
			ProfessorName: strings.TrimSpace(sr.ProfessorName),
		})
	}
	return plan, nil
}

// publishConflicts runs a detection pass over the full session set and
// publishes a conflicts-detected event when the pass finds any. It
// returns the number of affected students; detection failures are
// swallowed because the triggering operation already succeeded.
func (h *AdminHandler) publishConflicts(c echo.Context, trigger string) int {
	ctx := c.Request().Context()
	sessions, err := h.Sessions.List(ctx, repository.ListFilter{})
	if err != nil {
		return 0
	}
	conflicts := conflict.Detect(sessions)
	if len(conflicts) == 0 {
		return 0
	}
	affected := map[string]bool{}
	for _, cf := range conflicts {
		affected[cf.CodEtu] = true
	}
	_ = queuepublisher.PublishConflictsDetected(ctx, queue.ConflictsDetectedEvent{
		TriggeredBy:      trigger,
		ConflictCount:    len(conflicts),
		AffectedStudents: len(affected),
		DetectedAt:       time.Now().UTC().Format("2006-01-02 15:04:05"),
	})
	return len(affected)
}

// locationRange selects the contiguous slice of the sorted location
// list between the named bounds (inclusive). Empty names extend the
// range to the corresponding end of the list.
func locationRange(sorted []model.Location, from, to string) ([]model.Location, error) {
	start, end := 0, len(sorted)-1
	if from != "" {
		start = indexOfLocation(sorted, from)
		if start < 0 {
			return nil, &planner.ValidationError{Msg: "unknown location " + from}
		}
	}
	if to != "" {
		end = indexOfLocation(sorted, to)
		if end < 0 {
			return nil, &planner.ValidationError{Msg: "unknown location " + to}
		}
	}
	if len(sorted) == 0 || start > end {
		return nil, &planner.PlanningError{Msg: "empty location range"}
	}
	return sorted[start : end+1], nil
}

func indexOfLocation(locations []model.Location, name string) int {
	for i, l := range locations {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// Package planner turns a student cohort and a set of candidate
// locations into a committable exam seating plan. All planner-level
// violations are recoverable: errors carry enough detail (duplicate
// names, shortfall amount, missing fields) for the caller to correct
// the plan, and nothing is silently coerced.
package planner

import (
	"fmt"
	"strings"
)

// ValidationError marks malformed planner input, such as a cohort that
// does not match the announced size.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "invalid plan input: " + e.Msg }

// PlanningError marks a distribution request that can never produce a
// plan: an empty location range or zero total capacity.
type PlanningError struct {
	Msg string
}

func (e *PlanningError) Error() string { return "planning failed: " + e.Msg }

// DuplicateLocationError rejects a plan using the same location in more
// than one slot. A room cannot host two sessions of the same exam
// simultaneously. Names lists every duplicated location.
type DuplicateLocationError struct {
	Names []string
}

func (e *DuplicateLocationError) Error() string {
	return fmt.Sprintf("duplicate location(s) in plan: %s", strings.Join(e.Names, ", "))
}

// IncompletePlanError rejects a commit whose slot counts do not sum to
// the cohort size, or whose common fields are missing or inconsistent.
type IncompletePlanError struct {
	Missing    []string // names of absent common fields
	Assigned   int      // current sum of slot counts
	CohortSize int
	Reason     string // extra detail, e.g. inverted time range
}

func (e *IncompletePlanError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("incomplete plan: missing %s", strings.Join(e.Missing, ", "))
	}
	if e.Reason != "" {
		return "incomplete plan: " + e.Reason
	}
	return fmt.Sprintf("incomplete plan: %d of %d students assigned", e.Assigned, e.CohortSize)
}

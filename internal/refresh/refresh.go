// Package refresh reconciles the assigned-student lists of future exam
// sessions against current enrollment. It corrects membership drift
// (late enrollments, withdrawals) without re-running allocation: room,
// time and count choices are never touched here.
package refresh

import (
	"context"
	"sort"
	"strings"

	"github.com/scolarite/exam-scheduling/internal/model"
	"github.com/scolarite/exam-scheduling/internal/planner"
)

// Store is the slice of the session store refresh needs.
type Store interface {
	ListFrom(ctx context.Context, date string) ([]model.ExamSession, error)
	ReplaceAssignedStudents(ctx context.Context, id uint64, codes []string) error
}

// Mismatch flags one committed exam whose current roster size no longer
// matches the seats committed for it. The sessions are left untouched;
// resizing a room assignment is a manual re-planning decision.
type Mismatch struct {
	ModuleCode string   `json:"module_code"`
	GroupName  string   `json:"group_name"`
	ExamDate   string   `json:"exam_date"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	SessionIDs []uint64 `json:"session_ids"`
	Assigned   int      `json:"assigned"` // students currently seated
	Roster     int      `json:"roster"`   // students currently enrolled
}

// Report summarizes one refresh run.
type Report struct {
	UpdatedCount int        `json:"updated_count"` // sessions whose lists were replaced
	Mismatches   []Mismatch `json:"mismatches"`
}

// Refresher re-pulls rosters through the provider and pushes replaced
// lists into the store.
type Refresher struct {
	store  Store
	roster planner.RosterProvider
}

// New constructs a Refresher.
func New(store Store, roster planner.RosterProvider) *Refresher {
	return &Refresher{store: store, roster: roster}
}

// Refresh reconciles every session with exam_date >= asOfDate. Sessions
// created by the same commit (same module, group, date and time range)
// are treated as one exam: the current cohort is rebuilt once and
// re-sliced over them in commit order. When the cohort size still
// matches the committed seats the lists are replaced; when it drifted
// the exam is reported as a mismatch and left as committed.
func (r *Refresher) Refresh(ctx context.Context, asOfDate string) (*Report, error) {
	sessions, err := r.store.ListFrom(ctx, asOfDate)
	if err != nil {
		return nil, err
	}

	type examKey struct {
		module, group, date, start, end string
	}
	groups := make(map[examKey][]*model.ExamSession)
	var order []examKey
	for i := range sessions {
		s := &sessions[i]
		k := examKey{s.ModuleCode, s.GroupName, s.ExamDate, s.StartTime, s.EndTime}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], s)
	}

	report := &Report{}
	for _, k := range order {
		exam := groups[k]
		// Commit inserts sessions in slot order, so ascending IDs
		// reproduce the original room order for re-slicing.
		sort.Slice(exam, func(i, j int) bool { return exam[i].ID < exam[j].ID })

		cohort, err := planner.BuildCohort(ctx, r.roster, selectionsFromLabels(k.module, k.group))
		if err != nil {
			return nil, err
		}

		committed := 0
		for _, s := range exam {
			committed += len(s.AssignedStudents)
		}
		if len(cohort) != committed {
			ids := make([]uint64, len(exam))
			for i, s := range exam {
				ids[i] = s.ID
			}
			report.Mismatches = append(report.Mismatches, Mismatch{
				ModuleCode: k.module,
				GroupName:  k.group,
				ExamDate:   k.date,
				StartTime:  k.start,
				EndTime:    k.end,
				SessionIDs: ids,
				Assigned:   committed,
				Roster:     len(cohort),
			})
			continue
		}

		codes := cohort.Codes()
		offset := 0
		for _, s := range exam {
			run := codes[offset : offset+len(s.AssignedStudents)]
			offset += len(s.AssignedStudents)
			if equalCodes(run, s.AssignedStudents) {
				continue // membership unchanged, skip the write
			}
			if err := r.store.ReplaceAssignedStudents(ctx, s.ID, run); err != nil {
				return nil, err
			}
			report.UpdatedCount++
		}
	}
	return report, nil
}

// selectionsFromLabels reverses the merged-label convention back into
// roster selections: module codes joined with "+", group names joined
// with "+", "toutes sections" standing for the wildcard. Every module
// is queried for every group of the merged selection; BuildCohort
// de-duplicates the union.
func selectionsFromLabels(moduleLabel, groupLabel string) []planner.Selection {
	modules := strings.Split(moduleLabel, "+")
	var groups []string
	for _, g := range strings.Split(groupLabel, "+") {
		g = strings.TrimSpace(g)
		if g == "" || g == "toutes sections" {
			g = "*"
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		groups = []string{"*"}
	}
	var out []planner.Selection
	for _, m := range modules {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		for _, g := range groups {
			out = append(out, planner.Selection{ModuleCode: m, GroupName: g})
		}
	}
	return out
}

func equalCodes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

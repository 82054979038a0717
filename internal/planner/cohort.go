package planner

import (
	"context"
	"sort"

	"github.com/scolarite/exam-scheduling/internal/model"
)

// RosterProvider supplies current enrollment for a module+group
// selection. The wildcard group "*" selects all groups of the module.
// Implemented by repository.RosterRepo in production.
type RosterProvider interface {
	GetStudents(ctx context.Context, moduleCode, groupName string) ([]model.StudentRef, error)
}

// Selection names one module+group pair contributing students to a
// plan. Several selections may be merged into a single combined exam.
type Selection struct {
	ModuleCode string `json:"module_code"`
	GroupName  string `json:"group_name"` // "*" selects every group
}

// Cohort is the ordered, de-duplicated set of students to be seated for
// one planning action. Order is by surname (then first name, then
// code) so slicing into contiguous room runs is deterministic.
type Cohort []model.StudentRef

// Codes returns the cohort's student codes in cohort order.
func (c Cohort) Codes() []string {
	out := make([]string, len(c))
	for i, s := range c {
		out[i] = s.CodEtu
	}
	return out
}

// BuildCohort merges the rosters of all selections into one cohort.
// Students enrolled under several selections appear once, keyed by
// cod_etu. At least one selection is required.
func BuildCohort(ctx context.Context, provider RosterProvider, selections []Selection) (Cohort, error) {
	if len(selections) == 0 {
		return nil, &ValidationError{Msg: "at least one module/group selection is required"}
	}
	seen := make(map[string]bool)
	var cohort Cohort
	for _, sel := range selections {
		if sel.ModuleCode == "" {
			return nil, &ValidationError{Msg: "selection with empty module code"}
		}
		group := sel.GroupName
		if group == "" {
			group = "*"
		}
		students, err := provider.GetStudents(ctx, sel.ModuleCode, group)
		if err != nil {
			return nil, err
		}
		for _, s := range students {
			if seen[s.CodEtu] {
				continue
			}
			seen[s.CodEtu] = true
			cohort = append(cohort, s)
		}
	}
	sort.SliceStable(cohort, func(i, j int) bool {
		if cohort[i].Nom != cohort[j].Nom {
			return cohort[i].Nom < cohort[j].Nom
		}
		if cohort[i].Prenom != cohort[j].Prenom {
			return cohort[i].Prenom < cohort[j].Prenom
		}
		return cohort[i].CodEtu < cohort[j].CodEtu
	})
	return cohort, nil
}

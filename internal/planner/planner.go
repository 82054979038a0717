package planner

import (
	"context"
	"fmt"

	"github.com/scolarite/exam-scheduling/internal/model"
)

// Distribution is the outcome of AutoDistribute. Shortfall is non-zero
// when the cohort exceeds the combined capacity of the selected range;
// the filled slots are still returned so the caller can add rooms and
// retry instead of starting over.
type Distribution struct {
	Slots     []Slot `json:"slots"`
	Shortfall int    `json:"shortfall"`
}

// AutoDistribute spreads cohortSize students over the given locations
// proportionally to capacity. The algorithm is deterministic and
// order-dependent: floor(capacity * ratio) per location in range order,
// then a remainder pass that increments slots in the same order while
// spare capacity exists. Rounding ties always break in ascending
// location order; reimplementations must keep that tie-break to stay
// behaviorally compatible. Slots left at zero are dropped.
func AutoDistribute(cohortSize int, locations []model.Location) (Distribution, error) {
	if cohortSize < 0 {
		return Distribution{}, &ValidationError{Msg: fmt.Sprintf("cohort size must be non-negative, got %d", cohortSize)}
	}
	if len(locations) == 0 {
		return Distribution{}, &PlanningError{Msg: "no locations selected"}
	}
	totalCapacity := 0
	for _, loc := range locations {
		if loc.Capacity <= 0 {
			return Distribution{}, &ValidationError{Msg: fmt.Sprintf("location %q has non-positive capacity %d", loc.Name, loc.Capacity)}
		}
		totalCapacity += loc.Capacity
	}
	if totalCapacity == 0 {
		return Distribution{}, &PlanningError{Msg: "selected locations have zero total capacity"}
	}

	ratio := float64(cohortSize) / float64(totalCapacity)
	if ratio > 1 {
		ratio = 1
	}

	slots := make([]Slot, len(locations))
	assigned := 0
	for i, loc := range locations {
		count := int(float64(loc.Capacity) * ratio)
		slots[i] = Slot{Location: loc, Count: count}
		assigned += count
	}

	// Remainder pass: one student at a time, in range order, into any
	// slot below capacity. A full pass that places nobody means the
	// cohort exceeds the combined capacity; the rest is reported as
	// shortfall rather than dropped.
	remainder := cohortSize - assigned
	for remainder > 0 {
		placed := false
		for i := range slots {
			if remainder == 0 {
				break
			}
			if slots[i].Count < slots[i].Location.Capacity {
				slots[i].Count++
				remainder--
				placed = true
			}
		}
		if !placed {
			break
		}
	}

	filled := slots[:0]
	for _, s := range slots {
		if s.Count > 0 {
			filled = append(filled, s)
		}
	}
	return Distribution{Slots: filled, Shortfall: remainder}, nil
}

// SessionStore persists the sessions of a committed plan atomically:
// either every session is created or none is. Implemented by
// repository.SessionRepo in production.
type SessionStore interface {
	CreateBatch(ctx context.Context, sessions []*model.ExamSession) error
}

// Commit validates the plan, slices the ordered cohort into contiguous
// non-overlapping runs matching each slot's count, and persists one
// session per non-empty slot. The concatenation of all created
// sessions' student slices reproduces the cohort exactly; that
// post-condition is verified before anything is written.
func Commit(ctx context.Context, store SessionStore, p *Plan, cohort Cohort) ([]model.ExamSession, error) {
	if len(cohort) != p.CohortSize {
		return nil, &ValidationError{Msg: fmt.Sprintf("cohort has %d students but plan announces %d", len(cohort), p.CohortSize)}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	codes := cohort.Codes()
	sessions := make([]*model.ExamSession, 0, len(p.Slots))
	offset := 0
	for _, slot := range p.Slots {
		if slot.Count == 0 {
			continue
		}
		run := codes[offset : offset+slot.Count]
		offset += slot.Count
		sessions = append(sessions, &model.ExamSession{
			ModuleCode:       p.ModuleCode,
			ModuleName:       p.ModuleName,
			GroupName:        p.GroupName,
			ExamDate:         p.ExamDate,
			StartTime:        p.StartTime,
			EndTime:          p.EndTime,
			LocationName:     slot.Location.Name,
			ProfessorName:    slot.ProfessorName,
			AssignedStudents: run,
		})
	}
	if offset != p.CohortSize {
		// Unreachable after Validate; kept as a hard stop because a
		// wrong partition would seat students twice or not at all.
		return nil, fmt.Errorf("commit partition covered %d of %d students", offset, p.CohortSize)
	}

	if err := store.CreateBatch(ctx, sessions); err != nil {
		return nil, err
	}
	out := make([]model.ExamSession, len(sessions))
	for i, s := range sessions {
		out[i] = *s
	}
	return out, nil
}

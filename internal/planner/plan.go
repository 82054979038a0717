package planner

import "github.com/scolarite/exam-scheduling/internal/model"

// Slot is one (location, count, professor) row of an in-progress,
// uncommitted plan.
type Slot struct {
	Location      model.Location `json:"location"`
	Count         int            `json:"count"`
	ProfessorName string         `json:"professor_name"`
}

// Plan is the transient aggregate a caller edits between auto-
// distribution and commit. It is a value object owned by the request,
// not component state: handlers rebuild it from the request body on
// every call.
type Plan struct {
	ModuleCode string `json:"module_code"`
	ModuleName string `json:"module_name"`
	GroupName  string `json:"group_name"`
	ExamDate   string `json:"exam_date"`   // "2006-01-02"
	StartTime  string `json:"start_time"`  // "15:04", half-open interval
	EndTime    string `json:"end_time"`    // "15:04"
	CohortSize int    `json:"cohort_size"`
	Slots      []Slot `json:"slots"`
}

// Assigned returns the sum of all slot counts.
func (p *Plan) Assigned() int {
	total := 0
	for _, s := range p.Slots {
		total += s.Count
	}
	return total
}

// Remaining returns how many cohort members are not yet assigned to a
// slot. Negative means the plan over-assigns.
func (p *Plan) Remaining() int {
	return p.CohortSize - p.Assigned()
}

// AddSlot appends an empty slot for the given location. Appending is
// only allowed while students remain unassigned.
func (p *Plan) AddSlot(loc model.Location) error {
	if p.Remaining() <= 0 {
		return &PlanningError{Msg: "all students are already assigned; no further slot can be added"}
	}
	p.Slots = append(p.Slots, Slot{Location: loc})
	return nil
}

// RemoveSlot deletes the slot at index i, releasing its students back
// to the unassigned remainder.
func (p *Plan) RemoveSlot(i int) error {
	if i < 0 || i >= len(p.Slots) {
		return &ValidationError{Msg: "slot index out of range"}
	}
	p.Slots = append(p.Slots[:i], p.Slots[i+1:]...)
	return nil
}

// SetSlotLocation changes the location of slot i and recomputes its
// count as min(new capacity, unassigned remainder excluding this slot).
// The recompute keeps the running total from exceeding the cohort size
// without requiring the caller to also edit the count.
func (p *Plan) SetSlotLocation(i int, loc model.Location) error {
	if i < 0 || i >= len(p.Slots) {
		return &ValidationError{Msg: "slot index out of range"}
	}
	others := p.Assigned() - p.Slots[i].Count
	count := p.CohortSize - others
	if count < 0 {
		count = 0
	}
	if count > loc.Capacity {
		count = loc.Capacity
	}
	p.Slots[i].Location = loc
	p.Slots[i].Count = count
	return nil
}

// Validate runs every pre-commit check. Duplicate locations are
// rejected first with the full list of offending names; then the common
// fields, the time interval and the sum rule are verified. Per-slot
// capacity bounds are re-checked too since slots arrive from the caller.
func (p *Plan) Validate() error {
	counts := map[string]int{}
	for _, s := range p.Slots {
		counts[s.Location.Name]++
	}
	var dups []string
	for _, s := range p.Slots {
		if counts[s.Location.Name] > 1 {
			counts[s.Location.Name] = -1 // report each name once
			dups = append(dups, s.Location.Name)
		}
	}
	if len(dups) > 0 {
		return &DuplicateLocationError{Names: dups}
	}

	var missing []string
	if p.ModuleCode == "" {
		missing = append(missing, "module_code")
	}
	if p.ExamDate == "" {
		missing = append(missing, "exam_date")
	}
	if p.StartTime == "" {
		missing = append(missing, "start_time")
	}
	if p.EndTime == "" {
		missing = append(missing, "end_time")
	}
	if len(missing) > 0 {
		return &IncompletePlanError{Missing: missing}
	}
	if p.StartTime >= p.EndTime {
		return &IncompletePlanError{Reason: "start time must be before end time"}
	}

	for _, s := range p.Slots {
		if s.Count < 0 {
			return &IncompletePlanError{Reason: "slot count for " + s.Location.Name + " is negative"}
		}
		if s.Count > s.Location.Capacity {
			return &IncompletePlanError{Reason: "slot count for " + s.Location.Name + " exceeds its capacity"}
		}
	}
	if got := p.Assigned(); got != p.CohortSize {
		return &IncompletePlanError{Assigned: got, CohortSize: p.CohortSize}
	}
	return nil
}

package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/scolarite/exam-scheduling/internal/model"
)

func loc(name string, capacity int) model.Location {
	return model.Location{Name: name, Capacity: capacity, Type: model.LocationTypeAmphi}
}

func counts(d Distribution) []int {
	out := make([]int, len(d.Slots))
	for i, s := range d.Slots {
		out[i] = s.Count
	}
	return out
}

func TestAutoDistribute_ProportionalWithRemainderCorrection(t *testing.T) {
	// 125 students over three rooms of 50: ratio 0.8333 floors to
	// 41,41,41 and the remainder of 2 goes to the first two rooms.
	d, err := AutoDistribute(125, []model.Location{loc("A", 50), loc("B", 50), loc("C", 50)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{42, 42, 41}
	got := counts(d)
	if len(got) != len(want) {
		t.Fatalf("got %d slots, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d count = %d, want %d", i, got[i], want[i])
		}
	}
	if d.Shortfall != 0 {
		t.Errorf("shortfall = %d, want 0", d.Shortfall)
	}
}

func TestAutoDistribute_ReportsUnplaceableRemainder(t *testing.T) {
	// Cohort of 10 into a single room of 5: the room fills and the
	// other 5 students must be reported, not dropped.
	d, err := AutoDistribute(10, []model.Location{loc("Amphi 1", 5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Slots) != 1 || d.Slots[0].Count != 5 {
		t.Fatalf("slots = %+v, want one slot with count 5", d.Slots)
	}
	if d.Shortfall != 5 {
		t.Errorf("shortfall = %d, want 5", d.Shortfall)
	}
}

func TestAutoDistribute_EmptyRangeFails(t *testing.T) {
	_, err := AutoDistribute(30, nil)
	var pe *PlanningError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PlanningError for empty range, got %v", err)
	}
}

func TestAutoDistribute_DropsZeroSlots(t *testing.T) {
	// One student over a tiny and a huge room: floor puts 0 everywhere,
	// the remainder pass fills the first room, and the untouched slot
	// must not survive into the result.
	d, err := AutoDistribute(1, []model.Location{loc("Salle 1", 1), loc("Amphi 1", 100)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Slots) != 1 {
		t.Fatalf("got %d slots, want 1 (zero-count slot must be dropped): %+v", len(d.Slots), d.Slots)
	}
	if d.Slots[0].Location.Name != "Salle 1" || d.Slots[0].Count != 1 {
		t.Errorf("unexpected slot %+v", d.Slots[0])
	}
}

func TestAutoDistribute_SumAndCapacityInvariants(t *testing.T) {
	cases := []struct {
		size int
		caps []int
	}{
		{0, []int{10, 20}},
		{1, []int{3}},
		{7, []int{3, 3, 3}},
		{100, []int{40, 35, 30}},
		{125, []int{50, 50, 50}},
		{199, []int{120, 80}},
		{53, []int{7, 11, 13, 17, 23}},
	}
	for _, c := range cases {
		locations := make([]model.Location, len(c.caps))
		total := 0
		for i, cap := range c.caps {
			locations[i] = loc(fmt.Sprintf("Salle %d", i+1), cap)
			total += cap
		}
		d, err := AutoDistribute(c.size, locations)
		if err != nil {
			t.Fatalf("size=%d caps=%v: %v", c.size, c.caps, err)
		}
		sum := 0
		for _, s := range d.Slots {
			if s.Count <= 0 || s.Count > s.Location.Capacity {
				t.Errorf("size=%d caps=%v: slot %s count %d outside (0, %d]",
					c.size, c.caps, s.Location.Name, s.Count, s.Location.Capacity)
			}
			sum += s.Count
		}
		if sum+d.Shortfall != c.size {
			t.Errorf("size=%d caps=%v: placed %d + shortfall %d != cohort %d",
				c.size, c.caps, sum, d.Shortfall, c.size)
		}
		if c.size <= total && d.Shortfall != 0 {
			t.Errorf("size=%d caps=%v: shortfall %d although cohort fits", c.size, c.caps, d.Shortfall)
		}
	}
}

func TestAutoDistribute_Deterministic(t *testing.T) {
	locations := []model.Location{loc("Amphi 1", 37), loc("Amphi 2", 61), loc("Salle 3", 24)}
	first, err := AutoDistribute(97, locations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := AutoDistribute(97, locations)
		if err != nil {
			t.Fatalf("unexpected error on run %d: %v", i, err)
		}
		for j := range first.Slots {
			if again.Slots[j].Count != first.Slots[j].Count {
				t.Fatalf("run %d slot %d count %d, first run had %d", i, j, again.Slots[j].Count, first.Slots[j].Count)
			}
		}
	}
}

func TestPlan_SetSlotLocationRecomputesCount(t *testing.T) {
	p := &Plan{
		CohortSize: 100,
		Slots: []Slot{
			{Location: loc("Amphi 1", 60), Count: 60},
			{Location: loc("Amphi 2", 60), Count: 40},
		},
	}
	// Moving slot 1 to a 30-seat room clamps its count to capacity.
	if err := p.SetSlotLocation(1, loc("Salle 5", 30)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Slots[1].Count != 30 {
		t.Errorf("count after move = %d, want 30 (capacity clamp)", p.Slots[1].Count)
	}
	// Moving it to a big room takes exactly the unassigned remainder.
	if err := p.SetSlotLocation(1, loc("Amphi 3", 200)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Slots[1].Count != 40 {
		t.Errorf("count after move = %d, want 40 (remainder)", p.Slots[1].Count)
	}
	if p.Assigned() != 100 {
		t.Errorf("assigned = %d, want 100", p.Assigned())
	}
}

func TestPlan_AddSlotOnlyWhileStudentsRemain(t *testing.T) {
	p := &Plan{CohortSize: 10, Slots: []Slot{{Location: loc("Amphi 1", 20), Count: 10}}}
	if err := p.AddSlot(loc("Salle 2", 30)); err == nil {
		t.Fatal("expected error when adding a slot to a fully assigned plan")
	}
	p.Slots[0].Count = 6
	if err := p.AddSlot(loc("Salle 2", 30)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Slots) != 2 || p.Slots[1].Count != 0 {
		t.Errorf("expected appended empty slot, got %+v", p.Slots)
	}
}

func validPlan() *Plan {
	return &Plan{
		ModuleCode: "INF301",
		ModuleName: "Compilation",
		GroupName:  "toutes sections",
		ExamDate:   "2026-01-15",
		StartTime:  "09:00",
		EndTime:    "10:30",
		CohortSize: 5,
		Slots: []Slot{
			{Location: loc("Amphi 1", 3), Count: 3, ProfessorName: "Benali"},
			{Location: loc("Salle 2", 4), Count: 2},
		},
	}
}

func TestPlan_ValidateRejectsDuplicateLocations(t *testing.T) {
	p := validPlan()
	p.Slots[1].Location = p.Slots[0].Location
	p.Slots[1].Count = 2

	err := p.Validate()
	var de *DuplicateLocationError
	if !errors.As(err, &de) {
		t.Fatalf("expected DuplicateLocationError, got %v", err)
	}
	if len(de.Names) != 1 || de.Names[0] != "Amphi 1" {
		t.Errorf("duplicate names = %v, want [Amphi 1]", de.Names)
	}
}

func TestPlan_ValidateRejectsIncompletePlans(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Plan)
	}{
		{"sum below cohort", func(p *Plan) { p.Slots[1].Count = 1 }},
		{"sum above cohort", func(p *Plan) { p.Slots[1].Count = 3 }},
		{"missing date", func(p *Plan) { p.ExamDate = "" }},
		{"missing module", func(p *Plan) { p.ModuleCode = "" }},
		{"inverted interval", func(p *Plan) { p.StartTime, p.EndTime = p.EndTime, p.StartTime }},
		{"touching interval", func(p *Plan) { p.EndTime = p.StartTime }},
		{"count above capacity", func(p *Plan) { p.Slots[0].Count = 4; p.Slots[1].Count = 1 }},
	}
	for _, c := range cases {
		p := validPlan()
		c.mutate(p)
		err := p.Validate()
		var ie *IncompletePlanError
		if !errors.As(err, &ie) {
			t.Errorf("%s: expected IncompletePlanError, got %v", c.name, err)
		}
	}
}

func TestPlan_ValidateAcceptsCompletePlan(t *testing.T) {
	if err := validPlan().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// fakeStore records batches without a database. failWith, when set, is
// returned before anything is recorded.
type fakeStore struct {
	batches  [][]*model.ExamSession
	failWith error
}

func (f *fakeStore) CreateBatch(ctx context.Context, sessions []*model.ExamSession) error {
	if f.failWith != nil {
		return f.failWith
	}
	var id uint64
	for _, s := range sessions {
		id++
		s.ID = id
	}
	f.batches = append(f.batches, sessions)
	return nil
}

func cohortOf(n int) Cohort {
	c := make(Cohort, n)
	for i := range c {
		c[i] = model.StudentRef{
			CodEtu: fmt.Sprintf("E%04d", i+1),
			Nom:    fmt.Sprintf("NOM%04d", i+1),
			Prenom: "Test",
		}
	}
	return c
}

func TestCommit_PartitionsCohortExactly(t *testing.T) {
	p := validPlan()
	store := &fakeStore{}
	cohort := cohortOf(5)

	sessions, err := Commit(context.Background(), store, p, cohort)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("created %d sessions, want 2", len(sessions))
	}
	var rebuilt []string
	for _, s := range sessions {
		rebuilt = append(rebuilt, s.AssignedStudents...)
	}
	want := cohort.Codes()
	if len(rebuilt) != len(want) {
		t.Fatalf("partition covers %d students, want %d", len(rebuilt), len(want))
	}
	for i := range want {
		if rebuilt[i] != want[i] {
			t.Fatalf("partition order diverges at %d: %s != %s", i, rebuilt[i], want[i])
		}
	}
	if sessions[0].LocationName != "Amphi 1" || len(sessions[0].AssignedStudents) != 3 {
		t.Errorf("first session %+v does not match its slot", sessions[0])
	}
}

func TestCommit_SkipsZeroCountSlots(t *testing.T) {
	p := validPlan()
	p.Slots = append(p.Slots, Slot{Location: loc("Salle 9", 10), Count: 0})
	store := &fakeStore{}

	sessions, err := Commit(context.Background(), store, p, cohortOf(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("created %d sessions, want 2 (zero slot skipped)", len(sessions))
	}
}

func TestCommit_RejectsInvalidPlanBeforePersisting(t *testing.T) {
	p := validPlan()
	p.Slots[1].Location = p.Slots[0].Location
	store := &fakeStore{}

	_, err := Commit(context.Background(), store, p, cohortOf(5))
	var de *DuplicateLocationError
	if !errors.As(err, &de) {
		t.Fatalf("expected DuplicateLocationError, got %v", err)
	}
	if len(store.batches) != 0 {
		t.Error("store must remain unchanged when the plan is rejected")
	}
}

func TestCommit_RejectsCohortSizeMismatch(t *testing.T) {
	p := validPlan()
	store := &fakeStore{}
	_, err := Commit(context.Background(), store, p, cohortOf(4))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(store.batches) != 0 {
		t.Error("store must remain unchanged on cohort mismatch")
	}
}

func TestCommit_PropagatesStoreErrors(t *testing.T) {
	p := validPlan()
	boom := errors.New("duplicate session")
	store := &fakeStore{failWith: boom}
	if _, err := Commit(context.Background(), store, p, cohortOf(5)); !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

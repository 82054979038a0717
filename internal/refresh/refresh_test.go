package refresh

import (
	"context"
	"fmt"
	"testing"

	"github.com/scolarite/exam-scheduling/internal/model"
)

// fakeStore serves sessions from memory and records replacements.
type fakeStore struct {
	sessions []model.ExamSession
	replaced map[uint64][]string
}

func (f *fakeStore) ListFrom(ctx context.Context, date string) ([]model.ExamSession, error) {
	var out []model.ExamSession
	for _, s := range f.sessions {
		if s.ExamDate >= date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) ReplaceAssignedStudents(ctx context.Context, id uint64, codes []string) error {
	if f.replaced == nil {
		f.replaced = map[uint64][]string{}
	}
	f.replaced[id] = append([]string{}, codes...)
	return nil
}

// fakeRoster serves rosters keyed by "module/group".
type fakeRoster struct {
	rosters map[string][]model.StudentRef
}

func (f *fakeRoster) GetStudents(ctx context.Context, moduleCode, groupName string) ([]model.StudentRef, error) {
	return f.rosters[moduleCode+"/"+groupName], nil
}

func students(codes ...string) []model.StudentRef {
	out := make([]model.StudentRef, len(codes))
	for i, c := range codes {
		out[i] = model.StudentRef{CodEtu: c, Nom: fmt.Sprintf("NOM_%s", c), Prenom: "X"}
	}
	return out
}

func futureSession(id uint64, date string, locationName string, assigned ...string) model.ExamSession {
	return model.ExamSession{
		ID:               id,
		ModuleCode:       "INF301",
		ModuleName:       "Compilation",
		GroupName:        "toutes sections",
		ExamDate:         date,
		StartTime:        "09:00",
		EndTime:          "10:30",
		LocationName:     locationName,
		AssignedStudents: assigned,
	}
}

func TestRefresh_ReplacesDriftedMembershipAtSameSize(t *testing.T) {
	// E2 withdrew, E4 enrolled late: same size, different membership.
	store := &fakeStore{sessions: []model.ExamSession{
		futureSession(1, "2026-02-01", "Amphi 1", "E1", "E2"),
		futureSession(2, "2026-02-01", "Salle 2", "E3"),
	}}
	roster := &fakeRoster{rosters: map[string][]model.StudentRef{
		"INF301/*": students("E1", "E3", "E4"),
	}}

	report, err := New(store, roster).Refresh(context.Background(), "2026-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Mismatches) != 0 {
		t.Fatalf("unexpected mismatches: %+v", report.Mismatches)
	}
	if report.UpdatedCount != 2 {
		t.Errorf("updated_count = %d, want 2", report.UpdatedCount)
	}
	// Cohort re-sliced in commit order: 2 seats then 1 seat.
	if got := store.replaced[1]; len(got) != 2 || got[0] != "E1" || got[1] != "E3" {
		t.Errorf("session 1 replaced with %v, want [E1 E3]", got)
	}
	if got := store.replaced[2]; len(got) != 1 || got[0] != "E4" {
		t.Errorf("session 2 replaced with %v, want [E4]", got)
	}
}

func TestRefresh_SkipsUnchangedSessions(t *testing.T) {
	store := &fakeStore{sessions: []model.ExamSession{
		futureSession(1, "2026-02-01", "Amphi 1", "E1", "E2"),
	}}
	roster := &fakeRoster{rosters: map[string][]model.StudentRef{
		"INF301/*": students("E1", "E2"),
	}}

	report, err := New(store, roster).Refresh(context.Background(), "2026-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.UpdatedCount != 0 {
		t.Errorf("updated_count = %d, want 0", report.UpdatedCount)
	}
	if len(store.replaced) != 0 {
		t.Errorf("no replacement expected, got %v", store.replaced)
	}
}

func TestRefresh_ReportsSizeDriftWithoutTouchingSessions(t *testing.T) {
	store := &fakeStore{sessions: []model.ExamSession{
		futureSession(1, "2026-02-01", "Amphi 1", "E1", "E2"),
	}}
	roster := &fakeRoster{rosters: map[string][]model.StudentRef{
		"INF301/*": students("E1", "E2", "E3"), // one more than committed
	}}

	report, err := New(store, roster).Refresh(context.Background(), "2026-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.UpdatedCount != 0 {
		t.Errorf("updated_count = %d, want 0", report.UpdatedCount)
	}
	if len(report.Mismatches) != 1 {
		t.Fatalf("mismatches = %+v, want one", report.Mismatches)
	}
	m := report.Mismatches[0]
	if m.Assigned != 2 || m.Roster != 3 {
		t.Errorf("mismatch %+v, want assigned 2, roster 3", m)
	}
	if len(store.replaced) != 0 {
		t.Error("sessions must be left as committed on size drift")
	}
}

func TestRefresh_IgnoresPastSessions(t *testing.T) {
	store := &fakeStore{sessions: []model.ExamSession{
		futureSession(1, "2025-06-01", "Amphi 1", "E1"), // already held
	}}
	roster := &fakeRoster{rosters: map[string][]model.StudentRef{
		"INF301/*": students("E2"),
	}}

	report, err := New(store, roster).Refresh(context.Background(), "2026-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.UpdatedCount != 0 || len(report.Mismatches) != 0 {
		t.Errorf("past sessions must not be refreshed: %+v", report)
	}
}

func TestRefresh_ResolvesMergedLabels(t *testing.T) {
	s := futureSession(1, "2026-02-01", "Amphi 1", "E1", "E2", "E3")
	s.ModuleCode = "INF301+MAT205"
	s.GroupName = "G1"
	store := &fakeStore{sessions: []model.ExamSession{s}}
	roster := &fakeRoster{rosters: map[string][]model.StudentRef{
		"INF301/G1": students("E1", "E2"),
		"MAT205/G1": students("E2", "E5"), // E2 in both, E5 replaces E3
	}}

	report, err := New(store, roster).Refresh(context.Background(), "2026-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.UpdatedCount != 1 {
		t.Fatalf("updated_count = %d, want 1: %+v", report.UpdatedCount, report)
	}
	got := store.replaced[1]
	want := []string{"E1", "E2", "E5"}
	if len(got) != len(want) {
		t.Fatalf("replaced with %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("replaced with %v, want %v", got, want)
		}
	}
}

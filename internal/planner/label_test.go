package planner

import "testing"

func TestCombineLabels(t *testing.T) {
	if got := CombineCodes([]string{"INF301", "MAT205", "INF301"}); got != "INF301+MAT205" {
		t.Errorf("CombineCodes = %q", got)
	}
	if got := CombineNames([]string{"Compilation", " Analyse ", ""}); got != "Compilation / Analyse" {
		t.Errorf("CombineNames = %q", got)
	}
	if got := CombineGroups([]string{"G1", "*", "G1"}); got != "G1+toutes sections" {
		t.Errorf("CombineGroups = %q", got)
	}
}

package utils

import (
	"sort"
	"testing"
)

func TestNaturalLess_NumericRuns(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Amphi 2", "Amphi 10", true},
		{"Amphi 10", "Amphi 2", false},
		{"Amphi 2", "Amphi 2", false},
		{"Salle 07", "Salle 7", true}, // shorter original run wins the tie
		{"Amphi 1", "Salle 1", true},
		{"amphi 3", "Amphi 10", true}, // case-insensitive on letters
		{"B", "AA", false},
		{"Amphi", "Amphi 1", true},
	}
	for _, c := range cases {
		if got := NaturalLess(c.a, c.b); got != c.want {
			t.Errorf("NaturalLess(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestNaturalLess_SortsLocationNames(t *testing.T) {
	names := []string{"Amphi 10", "Salle 3", "Amphi 2", "Amphi 1", "Salle 21", "Salle 4"}
	sort.Slice(names, func(i, j int) bool { return NaturalLess(names[i], names[j]) })

	want := []string{"Amphi 1", "Amphi 2", "Amphi 10", "Salle 3", "Salle 4", "Salle 21"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("sorted order %v, want %v", names, want)
		}
	}
}

package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/scolarite/exam-scheduling/internal/model"
	"github.com/scolarite/exam-scheduling/internal/planner"
	"github.com/scolarite/exam-scheduling/internal/repository"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate locations", &planner.DuplicateLocationError{Names: []string{"Amphi 1"}}, http.StatusConflict},
		{"incomplete plan", &planner.IncompletePlanError{Assigned: 10, CohortSize: 12}, http.StatusUnprocessableEntity},
		{"planning error", &planner.PlanningError{Msg: "no locations selected"}, http.StatusUnprocessableEntity},
		{"validation error", &planner.ValidationError{Msg: "empty module code"}, http.StatusBadRequest},
		{"repo validation", fmt.Errorf("%w: capacity must be positive", repository.ErrValidation), http.StatusBadRequest},
		{"location not found", repository.ErrLocationNotFound, http.StatusNotFound},
		{"session not found", repository.ErrSessionNotFound, http.StatusNotFound},
		{"duplicate session", repository.ErrDuplicateSession, http.StatusConflict},
		{"conflict", fmt.Errorf("%w: name taken", repository.ErrConflict), http.StatusConflict},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			if err := respondError(c, tc.err); err != nil {
				t.Fatalf("respondError returned %v", err)
			}
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestAdminIDDefaultsToUnknown(t *testing.T) {
	c, _ := newTestContext(t)
	if got := adminID(c); got != "unknown" {
		t.Errorf("adminID = %q, want %q", got, "unknown")
	}
	c.Set("admin_id", "U123")
	if got := adminID(c); got != "U123" {
		t.Errorf("adminID = %q, want %q", got, "U123")
	}
}

func TestLocationRange(t *testing.T) {
	locs := []model.Location{
		{Name: "Amphi 1", Capacity: 100},
		{Name: "Amphi 2", Capacity: 100},
		{Name: "Salle 10", Capacity: 30},
		{Name: "Salle 11", Capacity: 30},
	}

	t.Run("full list when bounds empty", func(t *testing.T) {
		rng, err := locationRange(locs, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rng) != 4 {
			t.Errorf("len = %d, want 4", len(rng))
		}
	})

	t.Run("inclusive interior range", func(t *testing.T) {
		rng, err := locationRange(locs, "Amphi 2", "Salle 10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rng) != 2 || rng[0].Name != "Amphi 2" || rng[1].Name != "Salle 10" {
			t.Errorf("got %v", rng)
		}
	})

	t.Run("open upper bound", func(t *testing.T) {
		rng, err := locationRange(locs, "Salle 10", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rng) != 2 || rng[0].Name != "Salle 10" {
			t.Errorf("got %v", rng)
		}
	})

	t.Run("unknown bound", func(t *testing.T) {
		if _, err := locationRange(locs, "Salle 99", ""); err == nil {
			t.Fatal("expected error for unknown location")
		}
	})

	t.Run("inverted bounds", func(t *testing.T) {
		if _, err := locationRange(locs, "Salle 11", "Amphi 1"); err == nil {
			t.Fatal("expected error for inverted range")
		}
	})

	t.Run("empty list", func(t *testing.T) {
		if _, err := locationRange(nil, "", ""); err == nil {
			t.Fatal("expected error for empty location list")
		}
	})
}

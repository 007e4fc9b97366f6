package core

import (
	"math"
	"testing"

	"github.com/huangsam/whatsmygrade/schema"
)

// FuzzSolve fuzzes Solve with two categories and checks its invariants.
func FuzzSolve(f *testing.F) {
	seeds := []struct {
		w1, w2, g1, passing float64
		unknown            bool
	}{
		{0.35, 0.65, 0.8, 0.5, true},
		{1, 1, 0.2, 0.6, true},
		{20, 80, 0.9, 0.95, false},
		{0, 1, 0.5, 0.5, true},
	}
	for _, s := range seeds {
		f.Add(s.w1, s.w2, s.g1, s.passing, s.unknown)
	}

	f.Fuzz(func(t *testing.T, w1, w2, g1, passing float64, unknown bool) {
		for _, v := range []float64{w1, w2, g1, passing} {
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 1e6 {
				t.Skip()
			}
		}
		if w1 < 0 || w2 < 0 || w1+w2 == 0 {
			t.Skip()
		}

		second := schema.KnownGrade(g1)
		if unknown {
			second = schema.UnknownGrade()
		}
		course, err := schema.NewCourse(
			[]schema.Category{{Name: "first", Weight: w1}, {Name: "second", Weight: w2}},
			map[string]schema.Grade{"first": schema.KnownGrade(g1), "second": second},
			schema.CourseConfig{PassingGrade: passing},
		)
		if err != nil {
			t.Skip()
		}

		res := Solve(course)
		if _, ok := map[schema.Outcome]bool{
			schema.AlreadyPassing:  true,
			schema.MinimumRequired: true,
			schema.Unattainable:    true,
		}[res.Outcome]; !ok {
			t.Fatalf("unexpected outcome %q", res.Outcome)
		}
		if !unknown && res.Outcome == schema.MinimumRequired {
			t.Fatalf("fully graded course returned %q", res.Outcome)
		}
		if res.Outcome == schema.MinimumRequired && (res.Minimum <= 0 || res.Minimum > 1+tolerance) {
			t.Fatalf("minimum %v out of range", res.Minimum)
		}
		if res.Outcome != schema.MinimumRequired && res.Minimum != 0 {
			t.Fatalf("minimum %v reported for %q", res.Minimum, res.Outcome)
		}
		if len(res.Categories) != 2 {
			t.Fatalf("expected 2 category rows, got %d", len(res.Categories))
		}
	})
}

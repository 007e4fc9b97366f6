package core

import (
	"github.com/huangsam/whatsmygrade/schema"
)

// tolerance absorbs float rounding when comparing against the passing grade
// and the 0..1 bounds of the minimum.
const tolerance = 1e-9

// Solve finds the uniform score needed in every unknown category to reach the
// passing grade. Weights are normalized against their total, so only their
// ratios matter. Solve never fails; an unvalidated course with no positive
// weight gives every category a share of 0.
func Solve(course *schema.Course) schema.Result {
	total := course.TotalWeight()
	passing := course.Config.PassingGrade

	res := schema.Result{
		PassingGrade: passing,
		Unknowns:     []string{},
		Categories:   make([]schema.CategoryResult, 0, len(course.Categories)),
	}

	for _, cat := range course.Categories {
		share := 0.0
		if total > 0 {
			share = cat.Weight / total
		}
		row := schema.CategoryResult{Name: cat.Name, Weight: cat.Weight, Share: share}

		if v, ok := course.Grades[cat.Name].Value(); ok {
			grade := v
			row.Grade = &grade
			row.Contribution = share * v
			res.KnownSum += row.Contribution
		} else {
			res.UnknownWeight += share
			res.Unknowns = append(res.Unknowns, cat.Name)
		}
		res.Categories = append(res.Categories, row)
	}

	if len(res.Unknowns) == 0 {
		overall := res.KnownSum
		res.Overall = &overall
	}

	// Same verdicts as the exact x <= 0 and unknownWeight == 0 tests, up to tolerance
	if res.UnknownWeight <= tolerance {
		if res.KnownSum >= passing-tolerance {
			res.Outcome = schema.AlreadyPassing
		} else {
			res.Outcome = schema.Unattainable
		}
		return res
	}

	x := (passing - res.KnownSum) / res.UnknownWeight
	switch {
	case x <= tolerance:
		res.Outcome = schema.AlreadyPassing
	case x > 1+tolerance:
		res.Outcome = schema.Unattainable
	default:
		res.Outcome = schema.MinimumRequired
		res.Minimum = x
	}
	return res
}

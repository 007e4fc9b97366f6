// Package schema has the course model, results and constants for all parts of whatsmygrade.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Validation errors reported by Course.Validate.
var (
	ErrUndeclaredCategory = errors.New("grade entry for undeclared category")
	ErrMissingGrade       = errors.New("missing grade entry")
	ErrDuplicateCategory  = errors.New("duplicate category")
	ErrNegativeWeight     = errors.New("weight must not be negative")
	ErrNoPositiveWeight   = errors.New("breakdown must declare at least one category with a positive weight")
)

// Category is a weighted grading component of a course.
type Category struct {
	Name   string  `json:"name"`   // Unique within the course, matched verbatim
	Weight float64 `json:"weight"` // Relative weight, not required to sum to 1
}

// Grade is either a known score or the unknown sentinel.
// The zero value is a known grade of 0; use UnknownGrade for unfinished categories.
type Grade struct {
	unknown bool
	value   float64
}

// KnownGrade returns a grade with a concrete score, where 1.0 is 100%.
func KnownGrade(v float64) Grade {
	return Grade{value: v}
}

// UnknownGrade returns a grade that has not been determined yet.
func UnknownGrade() Grade {
	return Grade{unknown: true}
}

// IsUnknown reports whether the grade is still undetermined.
func (g Grade) IsUnknown() bool {
	return g.unknown
}

// Value returns the score and true for known grades, or 0 and false for unknown ones.
func (g Grade) Value() (float64, bool) {
	if g.unknown {
		return 0, false
	}
	return g.value, true
}

// String renders the grade as a decimal fraction or the unknown keyword.
func (g Grade) String() string {
	if g.unknown {
		return UnknownKeyword
	}
	return strconv.FormatFloat(g.value, 'f', -1, 64)
}

// MarshalJSON encodes known grades as numbers and unknown grades as the "unknown" string.
func (g Grade) MarshalJSON() ([]byte, error) {
	if g.unknown {
		return json.Marshal(UnknownKeyword)
	}
	return json.Marshal(g.value)
}

// CourseConfig holds the options of the config section.
type CourseConfig struct {
	PassingGrade float64 `json:"passing_grade"`
}

// DefaultCourseConfig returns the config used when a grade file has no config section.
func DefaultCourseConfig() CourseConfig {
	return CourseConfig{PassingGrade: DefaultPassingGrade}
}

// Course is the validated in-memory representation of a grade file.
// It is built once by the parser and only read afterwards.
type Course struct {
	Categories []Category       `json:"categories"`
	Grades     map[string]Grade `json:"grades"`
	Config     CourseConfig     `json:"config"`
}

// NewCourse builds a course and validates it.
func NewCourse(categories []Category, grades map[string]Grade, cfg CourseConfig) (*Course, error) {
	c := &Course{Categories: categories, Grades: grades, Config: cfg}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// TotalWeight returns the sum of all category weights.
func (c *Course) TotalWeight() float64 {
	total := 0.0
	for _, cat := range c.Categories {
		total += cat.Weight
	}
	return total
}

// Unknowns returns the names of unknown categories in declaration order.
func (c *Course) Unknowns() []string {
	var names []string
	for _, cat := range c.Categories {
		if g, ok := c.Grades[cat.Name]; ok && g.IsUnknown() {
			names = append(names, cat.Name)
		}
	}
	return names
}

// Validate checks the invariants between the breakdown and the grades.
func (c *Course) Validate() error {
	declared := make(map[string]struct{}, len(c.Categories))
	hasPositive := false
	for _, cat := range c.Categories {
		if cat.Weight < 0 {
			return fmt.Errorf("%w: %q has weight %g", ErrNegativeWeight, cat.Name, cat.Weight)
		}
		if cat.Weight > 0 {
			hasPositive = true
		}
		if _, dup := declared[cat.Name]; dup {
			return fmt.Errorf("%w %q", ErrDuplicateCategory, cat.Name)
		}
		declared[cat.Name] = struct{}{}
	}
	if !hasPositive {
		return ErrNoPositiveWeight
	}

	for _, name := range slices.Sorted(maps.Keys(c.Grades)) {
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("%w %q", ErrUndeclaredCategory, name)
		}
	}
	for _, cat := range c.Categories {
		if _, ok := c.Grades[cat.Name]; !ok {
			return fmt.Errorf("%w for %q", ErrMissingGrade, cat.Name)
		}
	}
	return nil
}

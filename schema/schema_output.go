package schema

// CategoryResult is one row of the grade summary.
type CategoryResult struct {
	Name         string   `json:"name"`
	Weight       float64  `json:"weight"`          // Raw weight as written in the breakdown
	Share        float64  `json:"share"`           // Weight normalized against the total weight
	Grade        *float64 `json:"grade,omitempty"` // Nil when the grade is unknown
	Contribution float64  `json:"contribution"`    // Share times grade, 0 when unknown
}

// Unknown reports whether the row belongs to an unknown category.
func (r CategoryResult) Unknown() bool {
	return r.Grade == nil
}

// Result is the verdict of the solver along with the numbers that produced it.
type Result struct {
	Outcome       Outcome          `json:"outcome"`
	Minimum       float64          `json:"minimum,omitempty"` // Uniform score needed in each unknown category, only for MinimumRequired
	PassingGrade  float64          `json:"passing_grade"`     // Threshold from the config section
	KnownSum      float64          `json:"known_sum"`         // Normalized weighted sum of known grades
	UnknownWeight float64          `json:"unknown_weight"`    // Normalized share of unknown categories
	Overall       *float64         `json:"overall,omitempty"` // Final grade, only when nothing is unknown
	Unknowns      []string         `json:"unknowns"`
	Categories    []CategoryResult `json:"categories"`
}

// GetPlainLabel returns a plain text label describing the outcome.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(o Outcome) string {
	switch o {
	case AlreadyPassing:
		return "Passing"
	case MinimumRequired:
		return "Reachable"
	case Unattainable:
		return "Unattainable"
	default:
		return "Unknown"
	}
}

// EnrichedResult adds presentation data to a Result.
type EnrichedResult struct {
	Label string `json:"label"`
	Result
}

// EnrichResult adds the outcome label to a result.
func EnrichResult(r Result) EnrichedResult {
	return EnrichedResult{
		Label:  GetPlainLabel(r.Outcome),
		Result: r,
	}
}

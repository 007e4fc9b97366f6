package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Outcome represents the verdict reached by the solver.
	Outcome string

	// Section represents a recognized section of a grade file.
	Section string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All solver outcomes.
const (
	AlreadyPassing  Outcome = "already_passing"
	MinimumRequired Outcome = "minimum_required"
	Unattainable    Outcome = "unattainable"
)

// All grade file sections.
const (
	BreakdownSection Section = "breakdown"
	GradesSection    Section = "grades"
	ConfigSection    Section = "config"
)

// Keywords and config keys of the grade file format.
const (
	UnknownKeyword   = "unknown"
	PassingGradeKey  = "passing_grade"
	CommentPrefix    = "#"
	KeyValueSep      = ":"
	SectionOpenChar  = "["
	SectionCloseChar = "]"
)

// DefaultPassingGrade is used when the config section omits passing_grade.
const DefaultPassingGrade = 0.5

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSections lists all sections a grade file may open.
var ValidSections = map[Section]struct{}{
	BreakdownSection: {},
	GradesSection:    {},
	ConfigSection:    {},
}

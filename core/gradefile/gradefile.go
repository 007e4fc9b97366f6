// Package gradefile parses the sectioned text format that describes a course.
//
// A grade file looks like this:
//
//	# full-line comments start with '#'
//	[breakdown]
//	final: 35%
//	midterm 1: 20%
//
//	[grades]
//	final: unknown
//	midterm 1: 27/40
//
//	[config]
//	passing_grade: 50%
//
// Sections may come in any order. Trailing comments after a value are not
// supported; "final: 35% # exam" is rejected as a malformed expression.
package gradefile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"github.com/huangsam/whatsmygrade/core/expr"
	"github.com/huangsam/whatsmygrade/schema"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for debug tracing and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// lineRef remembers where an entry was declared.
type lineRef struct {
	num  int
	text string
}

// parseState accumulates entries while walking the file.
type parseState struct {
	logger     *slog.Logger
	section    schema.Section
	categories []schema.Category
	catLines   map[string]lineRef
	grades     map[string]schema.Grade
	gradeOrder []string
	gradeLines map[string]lineRef
	config     schema.CourseConfig
}

// Parse reads a grade file and returns the validated course it describes.
func Parse(content string, opts ...Option) (*schema.Course, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	st := &parseState{
		logger:     o.logger,
		catLines:   make(map[string]lineRef),
		grades:     make(map[string]schema.Grade),
		gradeLines: make(map[string]lineRef),
		config:     schema.DefaultCourseConfig(),
	}

	content = strings.TrimPrefix(content, "\ufeff")
	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, schema.CommentPrefix) {
			continue
		}
		if err := st.parseLine(lineRef{num: i + 1, text: line}); err != nil {
			return nil, err
		}
	}

	return st.finish()
}

// parseLine handles a single non-blank, non-comment line.
func (st *parseState) parseLine(ref lineRef) error {
	if strings.HasPrefix(ref.text, schema.SectionOpenChar) {
		return st.openSection(ref)
	}
	if st.section == "" {
		return &ParseError{Line: ref.num, Text: ref.text, Msg: "unexpected statement outside of a section"}
	}

	key, value, err := splitKeyValue(ref)
	if err != nil {
		return err
	}

	switch st.section {
	case schema.BreakdownSection:
		return st.addCategory(ref, key, value)
	case schema.GradesSection:
		return st.addGrade(ref, key, value)
	default: // schema.ConfigSection
		return st.setConfig(ref, key, value)
	}
}

// openSection switches to the section named by a "[name]" line.
func (st *parseState) openSection(ref lineRef) error {
	if !strings.HasSuffix(ref.text, schema.SectionCloseChar) {
		return &ParseError{Line: ref.num, Text: ref.text, Msg: "malformed section header"}
	}
	name := strings.TrimSpace(ref.text[1 : len(ref.text)-1])
	section := schema.Section(strings.ToLower(name))
	if _, ok := schema.ValidSections[section]; !ok {
		return &ParseError{
			Line: ref.num,
			Text: ref.text,
			Msg:  fmt.Sprintf("unknown section %q, must be breakdown, grades or config", name),
		}
	}
	st.section = section
	st.logger.Debug("entering section", "section", section, "line", ref.num)
	return nil
}

// splitKeyValue splits "key: value" at the first colon.
func splitKeyValue(ref lineRef) (string, string, error) {
	before, after, found := strings.Cut(ref.text, schema.KeyValueSep)
	if !found {
		return "", "", &ParseError{Line: ref.num, Text: ref.text, Msg: "expected colon"}
	}
	key := strings.TrimSpace(before)
	value := strings.TrimSpace(after)
	if key == "" {
		return "", "", &ParseError{Line: ref.num, Text: ref.text, Msg: "missing value name"}
	}
	if r, ok := invalidKeyRune(key); ok {
		return "", "", &ParseError{Line: ref.num, Text: ref.text, Msg: fmt.Sprintf("invalid character %q in name %q", r, key)}
	}
	if value == "" {
		return "", "", &ParseError{Line: ref.num, Text: ref.text, Msg: "expected expression following a colon"}
	}
	return key, value, nil
}

// invalidKeyRune returns the first rune not allowed in a key.
func invalidKeyRune(key string) (rune, bool) {
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == ' ' {
			continue
		}
		return r, true
	}
	return 0, false
}

// evaluate runs the expression evaluator and ties failures to the line.
func evaluate(ref lineRef, value string) (float64, error) {
	v, err := expr.Eval(value)
	if err != nil {
		var evalErr *expr.EvaluationError
		if errors.As(err, &evalErr) {
			return 0, &LineError{Line: ref.num, Text: ref.text, Err: evalErr}
		}
		return 0, err
	}
	return v, nil
}

func (st *parseState) addCategory(ref lineRef, name, value string) error {
	if prev, dup := st.catLines[name]; dup {
		return &ParseError{
			Line: ref.num,
			Text: ref.text,
			Msg:  fmt.Sprintf("duplicate category %q, first declared on line %d", name, prev.num),
			Err:  schema.ErrDuplicateCategory,
		}
	}
	if value == schema.UnknownKeyword {
		return &ParseError{Line: ref.num, Text: ref.text, Msg: "invalid weight, a weight cannot be unknown"}
	}
	weight, err := evaluate(ref, value)
	if err != nil {
		return err
	}
	if weight < 0 {
		return &ParseError{Line: ref.num, Text: ref.text, Msg: "invalid weight, must not be negative", Err: schema.ErrNegativeWeight}
	}

	st.categories = append(st.categories, schema.Category{Name: name, Weight: weight})
	st.catLines[name] = ref
	st.logger.Debug("category", "name", name, "weight", weight, "line", ref.num)
	return nil
}

func (st *parseState) addGrade(ref lineRef, name, value string) error {
	if prev, dup := st.gradeLines[name]; dup {
		return &ParseError{
			Line: ref.num,
			Text: ref.text,
			Msg:  fmt.Sprintf("duplicate grade entry for %q, first given on line %d", name, prev.num),
		}
	}

	grade := schema.UnknownGrade()
	if value != schema.UnknownKeyword {
		v, err := evaluate(ref, value)
		if err != nil {
			return err
		}
		grade = schema.KnownGrade(v)
	}

	st.grades[name] = grade
	st.gradeOrder = append(st.gradeOrder, name)
	st.gradeLines[name] = ref
	st.logger.Debug("grade", "name", name, "grade", grade.String(), "line", ref.num)
	return nil
}

func (st *parseState) setConfig(ref lineRef, key, value string) error {
	switch key {
	case schema.PassingGradeKey:
		if value == schema.UnknownKeyword {
			return &ParseError{Line: ref.num, Text: ref.text, Msg: "passing_grade cannot be unknown"}
		}
		v, err := evaluate(ref, value)
		if err != nil {
			return err
		}
		if v > 1 {
			st.logger.Warn("passing_grade is above 100%, did you mean to write a percent?", "value", value, "line", ref.num)
		}
		st.config.PassingGrade = v
	default:
		st.logger.Debug("ignoring unrecognized config option", "key", key, "line", ref.num)
	}
	return nil
}

// finish cross-checks the grades against the breakdown and builds the course.
func (st *parseState) finish() (*schema.Course, error) {
	for _, name := range st.gradeOrder {
		if _, ok := st.catLines[name]; !ok {
			ref := st.gradeLines[name]
			return nil, &ParseError{
				Line: ref.num,
				Text: ref.text,
				Msg:  fmt.Sprintf("grade entry for undeclared category %q", name),
				Err:  schema.ErrUndeclaredCategory,
			}
		}
	}
	for _, cat := range st.categories {
		if _, ok := st.grades[cat.Name]; !ok {
			ref := st.catLines[cat.Name]
			return nil, &ParseError{
				Line: ref.num,
				Text: ref.text,
				Msg:  fmt.Sprintf("missing grade entry for %q, use \"%s: unknown\" if it is not graded yet", cat.Name, cat.Name),
				Err:  schema.ErrMissingGrade,
			}
		}
	}

	course, err := schema.NewCourse(st.categories, st.grades, st.config)
	if err != nil {
		return nil, &ParseError{Msg: err.Error(), Err: err}
	}
	st.logger.Debug("parsed course", "categories", len(course.Categories), "unknowns", len(course.Unknowns()))
	return course, nil
}

package gradefile

import (
	"errors"
	"fmt"

	"github.com/huangsam/whatsmygrade/core/expr"
)

// ParseError reports a grade file that does not follow the format.
type ParseError struct {
	Line int    // 1-based line number, 0 when the problem spans the whole file
	Text string // Offending line after trimming
	Msg  string
	Err  error // Underlying cause, if any
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LineError attaches the grade file line to an expression that failed to evaluate.
type LineError struct {
	Line int
	Text string
	Err  *expr.EvaluationError
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// LineOf returns the line number carried by err, or 0 if it has none.
func LineOf(err error) int {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	var le *LineError
	if errors.As(err, &le) {
		return le.Line
	}
	return 0
}

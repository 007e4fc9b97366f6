//go:build integration

// Package integration contains end-to-end tests for the whatsmygrade binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readmeBody = `[breakdown]
final: 35%
midterm 1: 20%
midterm 2: 20%
homework: 25%

[grades]
final: unknown
midterm 1: 27/40
midterm 2: 86.2%
homework: grade_multiple([8,6,7,9,10,7,10], out_of=10, drop_worst=1)
`

// run executes the binary and returns stdout, stderr and the exit code.
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else {
		require.NoError(t, err)
	}
	return stdout.String(), stderr.String(), code
}

// TestVerdicts checks the verdict sentence and exit code for each outcome.
func TestVerdicts(t *testing.T) {
	tests := []struct {
		name     string
		passing  string
		expected string
	}{
		{"minimum required", "70%", "you would need, at minimum, a 51.46% in final."},
		{"already passing", "50%", "You already pass the course with a 50.00% regardless of your score in final."},
		{"unattainable", "95%", "even with a perfect score (100%) in final."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeGradeFile(t, readmeBody+"\n[config]\npassing_grade: "+tt.passing+"\n")
			stdout, _, code := run(t, path, "--no-color")
			assert.Equal(t, 0, code, "every outcome is a successful run")
			assert.Contains(t, stdout, "===== GRADE SUMMARY =====")
			assert.Contains(t, stdout, tt.expected)
			assert.NotContains(t, stdout, "\x1b[")
		})
	}
}

// TestJSONOutput checks that the JSON report agrees with the text verdict.
func TestJSONOutput(t *testing.T) {
	path := writeGradeFile(t, readmeBody+"\n[config]\npassing_grade: 70%\n")
	stdout, _, code := run(t, path, "--output", "json")
	require.Equal(t, 0, code)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "minimum_required", report["outcome"])
	assert.InDelta(t, 0.5146, report["minimum"], 1e-3)
}

// TestErrorsNameTheLine checks that failures exit non-zero and point at the line.
func TestErrorsNameTheLine(t *testing.T) {
	path := writeGradeFile(t, "[breakdown]\nfinal: 100%\n[grades]\nfinal: 3/0\n")
	_, stderr, code := run(t, path)
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr, "Fatal "), stderr)
	assert.Contains(t, stderr, "line 4")
	assert.Contains(t, stderr, "division by zero")

	_, stderr, code = run(t, "/nonexistent/course.grades")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `cannot find file with path "/nonexistent/course.grades"`)
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/huangsam/whatsmygrade/core"
	"github.com/huangsam/whatsmygrade/internal/contract"
	"github.com/huangsam/whatsmygrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const readmeContent = `[breakdown]
final: 35%
midterm 1: 20%
midterm 2: 20%
homework: 25%

[grades]
final: unknown
midterm 1: 27/40
midterm 2: 86.2%
homework: grade_multiple([8,6,7,9,10,7,10], out_of=10, drop_worst=1)

[config]
passing_grade: 70%
`

func doRequest(t *testing.T, h http.Handler, method, path, contentType, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	h := NewRouter(core.NewService(nil), nil)
	rec, body := doRequest(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestSolve(t *testing.T) {
	h := NewRouter(core.NewService(nil), nil)

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		check       func(t *testing.T, body map[string]any)
	}{
		{
			name:        "plain text body",
			contentType: "text/plain",
			body:        readmeContent,
			status:      http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "minimum_required", body["outcome"])
				assert.Equal(t, "Reachable", body["label"])
				assert.InDelta(t, 0.514571, body["minimum"], 1e-3)
				assert.Equal(t, []any{"final"}, body["unknowns"])
			},
		},
		{
			name:        "json body",
			contentType: "application/json; charset=utf-8",
			body:        `{"content": "[breakdown]\na: 1\n[grades]\na: 80%\n"}`,
			status:      http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "already_passing", body["outcome"])
				assert.InDelta(t, 0.8, body["overall"], 1e-9)
			},
		},
		{
			name:        "json body without content",
			contentType: "application/json",
			body:        `{}`,
			status:      http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "content failed on 'required'", body["error"])
			},
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"content":`,
			status:      http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["error"], "invalid JSON body")
			},
		},
		{
			name:   "empty body",
			body:   "  \n",
			status: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "request body must contain a grade file", body["error"])
			},
		},
		{
			name:   "parse error",
			body:   "[breakdown]\nfinal 35%\n",
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["error"], "expected colon")
				assert.Equal(t, 2.0, body["line"])
			},
		},
		{
			name:   "overflowing weight",
			body:   "[breakdown]\na: 1\nb: " + strings.Repeat("9", 308) + " * 10\n[grades]\na: unknown\nb: 50%\n",
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["error"], "not a finite number")
				assert.Equal(t, 3.0, body["line"])
			},
		},
		{
			name:   "evaluation error",
			body:   "[breakdown]\na: 1\n[grades]\na: 1/0\n",
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["error"], "division by zero")
				assert.Equal(t, 4.0, body["line"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doRequest(t, h, http.MethodPost, "/v1/solve", tt.contentType, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			tt.check(t, body)
		})
	}
}

func TestSolveBodyTooLarge(t *testing.T) {
	h := NewRouter(core.NewService(nil), nil)
	rec, body := doRequest(t, h, http.MethodPost, "/v1/solve", "", strings.Repeat("#", MaxBodyBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, body["error"], "request body exceeds")
}

func TestEval(t *testing.T) {
	h := NewRouter(core.NewService(nil), nil)

	tests := []struct {
		name   string
		body   string
		status int
		key    string
		want   any
	}{
		{"fraction", `{"expression": "27/40"}`, http.StatusOK, "value", 0.675},
		{"drop worst", `{"expression": "grade_multiple([2, 4, 5], 5, drop_worst=1)"}`, http.StatusOK, "value", 0.9},
		{"missing expression", `{}`, http.StatusBadRequest, "error", "expression failed on 'required'"},
		{"bad json", `nope`, http.StatusBadRequest, "", nil},
		{"unknown is not a number", `{"expression": "unknown"}`, http.StatusUnprocessableEntity, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doRequest(t, h, http.MethodPost, "/v1/eval", "application/json", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			switch want := tt.want.(type) {
			case float64:
				assert.InDelta(t, want, body[tt.key], 1e-9)
			case string:
				assert.Equal(t, want, body[tt.key])
			}
		})
	}
}

func TestEvalTooLong(t *testing.T) {
	h := NewRouter(core.NewService(nil), nil)
	payload, err := json.Marshal(evalRequest{Expression: strings.Repeat("1", 5000)})
	require.NoError(t, err)

	rec, body := doRequest(t, h, http.MethodPost, "/v1/eval", "application/json", string(payload))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "expression failed on 'max'", body["error"])
}

func TestSolverFailureIsInternal(t *testing.T) {
	solver := &contract.MockGradeSolver{}
	solver.On("SolveContent", mock.Anything, "content").Return(nil, schema.Result{}, errors.New("disk on fire"))
	solver.On("Evaluate", mock.Anything, "1").Return(0.0, context.DeadlineExceeded)
	h := NewRouter(solver, nil)

	rec, body := doRequest(t, h, http.MethodPost, "/v1/solve", "text/plain", "content")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", body["error"])

	rec, _ = doRequest(t, h, http.MethodPost, "/v1/eval", "application/json", `{"expression": "1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	solver.AssertExpectations(t)
}

func TestCORSPreflight(t *testing.T) {
	h := NewRouter(core.NewService(nil), nil)
	req := httptest.NewRequest(http.MethodOptions, "/v1/solve", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", NewRouter(core.NewService(nil), nil), contract.NewLogger(io.Discard, false))
	}()
	cancel()
	assert.NoError(t, <-done)
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/whatsmygrade/core/expr"
	"github.com/huangsam/whatsmygrade/core/gradefile"
	"github.com/huangsam/whatsmygrade/internal/contract"
	"github.com/huangsam/whatsmygrade/internal/outwriter"
	"github.com/huangsam/whatsmygrade/schema"
)

// solveRequest is the JSON form of POST /v1/solve. A plain text body is also accepted.
type solveRequest struct {
	Content string `json:"content" validate:"required"`
}

// evalRequest is the body of POST /v1/eval.
type evalRequest struct {
	Expression string `json:"expression" validate:"required,max=4096"`
}

type evalResponse struct {
	Expression string  `json:"expression"`
	Value      float64 `json:"value"`
}

type errorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}

type handler struct {
	solver   contract.GradeSolver
	logger   *slog.Logger
	validate *validator.Validate
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		h.respondError(w, err)
		return
	}

	content := string(body)
	if isJSON(r) {
		var req solveRequest
		if err := json.Unmarshal(body, &req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid JSON body: %v", err)})
			return
		}
		if err := h.validate.Struct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
			return
		}
		content = req.Content
	}
	if strings.TrimSpace(content) == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must contain a grade file"})
		return
	}

	course, result, err := h.solver.SolveContent(r.Context(), content)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, outwriter.Report{EnrichedResult: schema.EnrichResult(result), Course: course})
}

func (h *handler) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondError(w, err)
			return
		}
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid JSON body: %v", err)})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
		return
	}

	v, err := h.solver.Evaluate(r.Context(), req.Expression)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, evalResponse{Expression: req.Expression, Value: v})
}

// respondError maps grade file and expression failures to 422 and everything else to 500.
func (h *handler) respondError(w http.ResponseWriter, err error) {
	var (
		parseErr *gradefile.ParseError
		lineErr  *gradefile.LineError
		evalErr  *expr.EvaluationError
		maxErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxErr):
		respondJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)})
	case errors.As(err, &parseErr), errors.As(err, &lineErr), errors.As(err, &evalErr):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Line: gradefile.LineOf(err)})
	default:
		h.logger.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/whatsmygrade/internal/contract"
	"github.com/huangsam/whatsmygrade/internal/parquet"
	"github.com/huangsam/whatsmygrade/schema"
)

// Report is the JSON document written for a solved course.
type Report struct {
	schema.EnrichedResult
	Course *schema.Course `json:"course"`
}

// PrintGradeReport outputs the solved course, dispatching based on the output format configured.
func PrintGradeReport(course *schema.Course, result schema.Result, cfg *contract.Config, duration time.Duration) error {
	fmtPercent, fmtFraction := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteJSONReport(w, course, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGradeCSV(w, result, fmtFraction)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertResult(result, uuid.NewString(), time.Now().UTC())
		if err := parquet.WriteGradeRowsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeGradeTable(w, result, cfg, fmtPercent); err != nil {
				return err
			}
			if err := writeVerdict(w, result, cfg, fmtPercent); err != nil {
				return err
			}
			if cfg.Debug {
				_, err := fmt.Fprintf(w, "Solved in %v\n", duration)
				return err
			}
			return nil
		}, "Wrote table")
	}
	return nil
}

// RenderText writes the plain text report without colors.
// It is used by surfaces that return the report as a string.
func RenderText(w io.Writer, result schema.Result, precision int) error {
	cfg := &contract.Config{Precision: precision, Width: 120}
	fmtPercent, _ := createFormatters(precision)
	if err := writeGradeTable(w, result, cfg, fmtPercent); err != nil {
		return err
	}
	return writeVerdict(w, result, cfg, fmtPercent)
}

// WriteJSONReport writes the result, its label and the parsed course as indented JSON.
func WriteJSONReport(w io.Writer, course *schema.Course, result schema.Result) error {
	return writeJSON(w, Report{EnrichedResult: schema.EnrichResult(result), Course: course})
}

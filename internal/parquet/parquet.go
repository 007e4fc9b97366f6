// Package parquet provides data structures and functions for exporting grade
// summaries to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/whatsmygrade/schema"
	"github.com/parquet-go/parquet-go"
)

// GradeRow represents one category of a solved course.
// Every row repeats the verdict so a single file can be queried on its own.
type GradeRow struct {
	// ReportID groups the rows written for one solve
	ReportID string `parquet:"report_id,snappy"`

	// Category is the verbatim category name from the breakdown
	Category string `parquet:"category,snappy"`

	// Position is the 1-based declaration order of the category
	Position int32 `parquet:"position,snappy"`

	// Weight is the raw weight as written in the breakdown
	Weight float64 `parquet:"weight,snappy"`

	// Share is the weight normalized against the total weight
	Share float64 `parquet:"share,snappy"`

	// Grade is the known score (nullable, nil when unknown)
	Grade *float64 `parquet:"grade,optional,snappy"`

	// Contribution is share times grade, 0 for unknown categories
	Contribution float64 `parquet:"contribution,snappy"`

	// Outcome is the solver verdict for the whole course
	Outcome string `parquet:"outcome,snappy"`

	// PassingGrade is the threshold from the config section
	PassingGrade float64 `parquet:"passing_grade,snappy"`

	// Minimum is the uniform score needed in each unknown category (nullable, nil unless the outcome is minimum_required)
	Minimum *float64 `parquet:"minimum,optional,snappy"`

	// SolvedAt is when the report was generated (stored as TIMESTAMP with nanosecond precision)
	SolvedAt time.Time `parquet:"solved_at,snappy"`
}

// ConvertResult converts a solver result into one GradeRow per category.
func ConvertResult(result schema.Result, reportID string, solvedAt time.Time) []GradeRow {
	var minimum *float64
	if result.Outcome == schema.MinimumRequired {
		m := result.Minimum
		minimum = &m
	}

	rows := make([]GradeRow, len(result.Categories))
	for i, c := range result.Categories {
		rows[i] = GradeRow{
			ReportID:     reportID,
			Category:     c.Name,
			Position:     int32(i + 1),
			Weight:       c.Weight,
			Share:        c.Share,
			Grade:        c.Grade,
			Contribution: c.Contribution,
			Outcome:      string(result.Outcome),
			PassingGrade: result.PassingGrade,
			Minimum:      minimum,
			SolvedAt:     solvedAt,
		}
	}
	return rows
}

// WriteGradeRows writes rows as a Parquet stream to w.
func WriteGradeRows(w io.Writer, data []GradeRow) error {
	// The schema is automatically derived from the GradeRow struct tags
	writer := parquet.NewGenericWriter[GradeRow](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteGradeRowsParquet writes a slice of GradeRow structs to a Parquet file.
func WriteGradeRowsParquet(data []GradeRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return WriteGradeRows(file, data)
}

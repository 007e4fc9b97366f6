package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/whatsmygrade/internal/contract"
	"github.com/huangsam/whatsmygrade/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Section banners of the text report.
const (
	summaryBanner = "===== GRADE SUMMARY ====="
	overallBanner = "===== OVERALL SCORE ====="
)

// paint applies c to s when colors are enabled.
func paint(cfg *contract.Config, c *color.Color, s string) string {
	if !cfg.UseColors {
		return s
	}
	return c.Sprint(s)
}

// writeGradeTable generates and writes the human-readable grade summary.
func writeGradeTable(w io.Writer, result schema.Result, cfg *contract.Config, fmtPercent func(float64) string) error {
	if _, err := fmt.Fprintln(w, summaryBanner); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Weight", "Grade", "Contribution"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxCategoryWidth(cfg)
	var data [][]string
	for _, c := range result.Categories {
		row := []string{
			paint(cfg, contract.CategoryColor, truncateName(c.Name, maxWidth)),
			strconv.FormatFloat(c.Share*100, 'f', 0, 64) + "%",
		}
		if c.Grade == nil {
			row = append(row, paint(cfg, contract.UnknownColor, schema.UnknownKeyword), "-")
		} else {
			gradeColor := contract.PassColor
			if *c.Grade < result.PassingGrade {
				gradeColor = contract.FailColor
			}
			row = append(row, paint(cfg, gradeColor, fmtPercent(*c.Grade)), fmtPercent(c.Contribution))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeVerdict writes the sentence that answers the question of the report.
func writeVerdict(w io.Writer, result schema.Result, cfg *contract.Config, fmtPercent func(float64) string) error {
	passing := paint(cfg, contract.PassColor, fmtPercent(result.PassingGrade))

	if len(result.Unknowns) == 0 {
		overall := result.KnownSum
		if result.Overall != nil {
			overall = *result.Overall
		}
		score := paint(cfg, contract.OutcomeColor(result.Outcome), fmtPercent(overall))
		if _, err := fmt.Fprintf(w, "\n%s\n          %s         \n", overallBanner, score); err != nil {
			return err
		}
		if result.Outcome == schema.AlreadyPassing {
			_, err := fmt.Fprintf(w, "You pass the course with a %s.\n", passing)
			return err
		}
		_, err := fmt.Fprintf(w, "This is below the passing grade of %s.\n", passing)
		return err
	}

	names := make([]string, len(result.Unknowns))
	for i, name := range result.Unknowns {
		names[i] = paint(cfg, contract.CategoryColor, name)
	}
	in := strings.Join(names, ", ")

	var err error
	switch result.Outcome {
	case schema.MinimumRequired:
		minimum := paint(cfg, contract.ReachableColor, fmtPercent(result.Minimum))
		_, err = fmt.Fprintf(w, "To pass the course with a %s, you would need, at minimum, a %s in %s.\n", passing, minimum, in)
	case schema.AlreadyPassing:
		_, err = fmt.Fprintf(w, "You already pass the course with a %s regardless of your score in %s.\n", passing, in)
	default:
		_, err = fmt.Fprintf(w, "You would not be able to pass the course with a %s, even with a perfect score (100%%) in %s.\n", passing, in)
	}
	return err
}

// writeGradeCSV writes one row per category with the verdict repeated on each row.
func writeGradeCSV(w io.Writer, result schema.Result, fmtFraction func(float64) string) error {
	header := []string{
		"category",
		"weight",
		"share",
		"grade",
		"contribution",
		"outcome",
		"label",
		"passing_grade",
		"minimum",
	}

	minimum := ""
	if result.Outcome == schema.MinimumRequired {
		minimum = fmtFraction(result.Minimum)
	}
	label := schema.GetPlainLabel(result.Outcome)

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range result.Categories {
			grade := schema.UnknownKeyword
			if c.Grade != nil {
				grade = fmtFraction(*c.Grade)
			}
			row := []string{
				c.Name,
				strconv.FormatFloat(c.Weight, 'f', -1, 64),
				fmtFraction(c.Share),
				grade,
				fmtFraction(c.Contribution),
				string(result.Outcome),
				label,
				fmtFraction(result.PassingGrade),
				minimum,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"ocr-datecheck/internal/compare"
	"ocr-datecheck/internal/core"
	"ocr-datecheck/internal/diagnose"
	"ocr-datecheck/internal/formatters"
	"ocr-datecheck/internal/formatters/shared"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"magenta": color.New(color.FgMagenta),
			"white":   color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors and tables"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report *core.BatchReport, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder

	if len(report.Outcomes) == 0 {
		return "No cases in manifest.\n", nil
	}

	rows := shared.Rows(report)
	nameWidth := f.calculateNameColumnWidth(rows)

	f.appendHeaders(&builder, nameWidth, options)
	for _, row := range rows {
		f.appendSummaryLine(&builder, row, nameWidth, options)
		if options.Verbose && !row.Skipped() {
			f.appendDetails(&builder, row.Result, options)
		}
	}

	builder.WriteString("\n")
	f.appendSummary(&builder, report, options)
	return builder.String(), nil
}

// paint applies a named color unless colors are disabled
func (f *Formatter) paint(name string, options formatters.FormatterOptions, format string, args ...interface{}) string {
	if options.NoColor {
		return fmt.Sprintf(format, args...)
	}
	return f.colors[name].Sprintf(format, args...)
}

func (f *Formatter) gradeColor(grade compare.Grade) string {
	switch grade {
	case compare.GradeHigh:
		return "green"
	case compare.GradeMedium:
		return "yellow"
	default:
		return "red"
	}
}

// calculateNameColumnWidth calculates the width of the case column
func (f *Formatter) calculateNameColumnWidth(rows []shared.Row) int {
	maxWidth := 4 // "CASE"
	for _, row := range rows {
		if n := len([]rune(row.Name)); n > maxWidth {
			maxWidth = n
		}
	}
	// Cap at 40 characters for readability
	if maxWidth > 40 {
		maxWidth = 40
	}
	return maxWidth
}

// appendHeaders adds column headers to the string builder
func (f *Formatter) appendHeaders(builder *strings.Builder, nameWidth int, options formatters.FormatterOptions) {
	builder.WriteString(f.paint("white", options, "%-*s %-8s %7s %7s %5s %5s %5s %5s %5s\n",
		nameWidth, "CASE", "GRADE", "ACC%", "PREC%", "REF", "CAND", "MATCH", "MISS", "EXTRA"))

	totalWidth := nameWidth + 1 + 8 + 1 + 7 + 1 + 7 + 5*6
	builder.WriteString(f.paint("white", options, "%s\n", strings.Repeat("-", totalWidth)))
}

// appendSummaryLine adds a single line for one case
func (f *Formatter) appendSummaryLine(builder *strings.Builder, row shared.Row, nameWidth int, options formatters.FormatterOptions) {
	name := truncate(row.Name, nameWidth)
	if row.Skipped() {
		fmt.Fprintf(builder, "%-*s %s %s\n", nameWidth, name,
			f.paint("magenta", options, "%-8s", "SKIPPED"), row.SkipReason)
		return
	}

	r := row.Result
	fmt.Fprintf(builder, "%-*s %s %7.1f %7.1f %5d %5d %5d %5d %5d\n",
		nameWidth, name,
		f.paint(f.gradeColor(r.Grade), options, "%-8s", strings.ToUpper(string(r.Grade))),
		r.Accuracy, r.Precision,
		r.ReferenceCount, r.CandidateCount, r.MatchedCount, r.MissingCount, r.ExtraCount)
}

// appendDetails adds the date samples and diagnoses of one case
func (f *Formatter) appendDetails(builder *strings.Builder, r *core.ValidationResult, options formatters.FormatterOptions) {
	lines := []struct {
		label string
		value string
	}{
		{"missing", shared.JoinDates(r.MissingDates, ", ")},
		{"extra", shared.JoinDates(r.ExtraDates, ", ")},
		{"impossible", shared.JoinDates(r.ImpossibleDates, ", ")},
		{"future", shared.JoinDates(r.FutureDates, ", ")},
		{"out of range", shared.JoinDates(r.OutOfRangeDates, ", ")},
	}
	for _, line := range lines {
		if line.value == "" {
			continue
		}
		fmt.Fprintf(builder, "    %-13s %s\n", line.label+":", line.value)
	}

	for _, d := range r.Diagnoses {
		f.appendDiagnosis(builder, d, options)
	}
}

func (f *Formatter) appendDiagnosis(builder *strings.Builder, d diagnose.ErrorClassification, options formatters.FormatterOptions) {
	labelColor := "yellow"
	if d.Label == diagnose.LabelNotFound {
		labelColor = "cyan"
	}
	fmt.Fprintf(builder, "    ! %s %s (%s, %s confidence)\n", d.Date,
		f.paint(labelColor, options, "%s", d.Label), d.Cause, d.Confidence)
	if d.Location != nil {
		fmt.Fprintf(builder, "      page %d at (%.0f, %.0f)\n", d.Location.Page, d.Location.X, d.Location.Y)
	}
	if len(d.Keywords) > 0 {
		fmt.Fprintf(builder, "      keywords: %s\n", strings.Join(d.Keywords, ", "))
	}
	if d.Rationale != "" {
		fmt.Fprintf(builder, "      %s\n", d.Rationale)
	}
}

// appendSummary adds the batch totals
func (f *Formatter) appendSummary(builder *strings.Builder, report *core.BatchReport, options formatters.FormatterOptions) {
	s := report.Summary
	mode := "raw"
	if report.Validated {
		mode = "validated"
	}

	builder.WriteString(f.paint("white", options, "Summary\n"))
	fmt.Fprintf(builder, "  run:        %s (profile %s, %s extraction)\n", report.RunID, report.Profile, mode)
	fmt.Fprintf(builder, "  cases:      %d validated, %d skipped\n", s.ValidatedCases, s.SkippedCases)
	if s.ValidatedCases == 0 {
		return
	}
	fmt.Fprintf(builder, "  accuracy:   %.1f%% average, precision %.1f%%\n", s.AverageAccuracy, s.AveragePrecision)

	grades := make([]string, 0, len(compare.Grades()))
	for _, g := range compare.Grades() {
		grades = append(grades, f.paint(f.gradeColor(g), options, "%s %d", g, s.GradeCounts[g]))
	}
	fmt.Fprintf(builder, "  grades:     %s\n", strings.Join(grades, ", "))
	fmt.Fprintf(builder, "  dates:      %d matched, %d missing, %d extra, %d impossible, %d future\n",
		s.TotalMatched, s.TotalMissing, s.TotalExtra, s.TotalImpossible, s.TotalFuture)

	labels := shared.SortedLabels(s.LabelCounts)
	if len(labels) > 0 {
		parts := make([]string, len(labels))
		for i, lc := range labels {
			parts[i] = fmt.Sprintf("%s %d", lc.Label, lc.Count)
		}
		fmt.Fprintf(builder, "  diagnoses:  %s\n", strings.Join(parts, ", "))
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

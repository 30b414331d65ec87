// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"sort"
	"strings"
	"time"

	"ocr-datecheck/internal/core"
	"ocr-datecheck/internal/dates"
	"ocr-datecheck/internal/diagnose"
	"ocr-datecheck/internal/formatters"
)

// Case status values
const (
	StatusValidated = "validated"
	StatusSkipped   = "skipped"
)

// Document is the top-level structure for JSON/YAML output
type Document struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	StartedAt  string       `json:"started_at" yaml:"started_at"`
	DurationMs int64        `json:"duration_ms" yaml:"duration_ms"`
	Profile    string       `json:"profile" yaml:"profile"`
	Validated  bool         `json:"validated_extraction" yaml:"validated_extraction"`
	Cases      []CaseEntry  `json:"cases" yaml:"cases"`
	Summary    core.Summary `json:"summary" yaml:"summary"`
}

// CaseEntry represents a single case in JSON/YAML format
type CaseEntry struct {
	Name         string                 `json:"name" yaml:"name"`
	Type         string                 `json:"type,omitempty" yaml:"type,omitempty"`
	BaselineFile string                 `json:"baseline_file" yaml:"baseline_file"`
	OCRFile      string                 `json:"ocr_file" yaml:"ocr_file"`
	Status       string                 `json:"status" yaml:"status"`
	SkipReason   string                 `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	DurationMs   int64                  `json:"duration_ms" yaml:"duration_ms"`
	Result       *core.ValidationResult `json:"result,omitempty" yaml:"result,omitempty"`
}

// Row is the flat per-case view used by tabular formats
type Row struct {
	Name       string
	Type       string
	Status     string
	SkipReason string
	Duration   time.Duration
	Result     *core.ValidationResult
}

// Skipped reports whether the row carries no result
func (r Row) Skipped() bool {
	return r.Result == nil
}

// Rows flattens the outcomes of report in manifest order
func Rows(report *core.BatchReport) []Row {
	rows := make([]Row, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		row := Row{
			Name:     o.Case.Name,
			Type:     o.Case.Type,
			Status:   StatusValidated,
			Duration: o.Duration,
			Result:   o.Result,
		}
		if o.Skipped || o.Result == nil {
			row.Status = StatusSkipped
			row.SkipReason = o.SkipReason
			row.Result = nil
		}
		rows = append(rows, row)
	}
	return rows
}

// ConvertReport converts a batch report into the JSON/YAML document. Unless
// verbose, matched samples and the block neighbourhoods of diagnoses are left out.
func ConvertReport(report *core.BatchReport, options formatters.FormatterOptions) Document {
	doc := Document{
		RunID:      report.RunID,
		StartedAt:  report.StartedAt.UTC().Format(time.RFC3339),
		DurationMs: report.Duration.Milliseconds(),
		Profile:    report.Profile,
		Validated:  report.Validated,
		Cases:      make([]CaseEntry, 0, len(report.Outcomes)),
		Summary:    report.Summary,
	}

	for i, row := range Rows(report) {
		entry := CaseEntry{
			Name:         row.Name,
			Type:         row.Type,
			BaselineFile: report.Outcomes[i].Case.BaselineFile,
			OCRFile:      report.Outcomes[i].Case.OCRFile,
			Status:       row.Status,
			SkipReason:   row.SkipReason,
			DurationMs:   row.Duration.Milliseconds(),
		}
		if row.Result != nil {
			result := *row.Result
			if !options.Verbose {
				result.MatchedDates = nil
				result.Diagnoses = trimDiagnoses(result.Diagnoses)
			}
			entry.Result = &result
		}
		doc.Cases = append(doc.Cases, entry)
	}
	return doc
}

func trimDiagnoses(list []diagnose.ErrorClassification) []diagnose.ErrorClassification {
	if list == nil {
		return nil
	}
	trimmed := make([]diagnose.ErrorClassification, len(list))
	for i, d := range list {
		d.Surrounding = nil
		d.SpatiallyClose = nil
		trimmed[i] = d
	}
	return trimmed
}

// JoinDates joins dates with sep, or returns "" for none
func JoinDates(list []dates.CanonicalDate, sep string) string {
	parts := make([]string, len(list))
	for i, d := range list {
		parts[i] = string(d)
	}
	return strings.Join(parts, sep)
}

// LabelCount pairs a diagnosis label with its number of occurrences
type LabelCount struct {
	Label diagnose.Label
	Count int
}

// SortedLabels returns the non-zero label counts in label declaration order
func SortedLabels(counts map[diagnose.Label]int) []LabelCount {
	var out []LabelCount
	for _, label := range diagnose.Labels() {
		if n := counts[label]; n > 0 {
			out = append(out, LabelCount{Label: label, Count: n})
		}
	}
	// labels outside the known set go last, alphabetically
	var extra []LabelCount
	known := make(map[diagnose.Label]bool)
	for _, label := range diagnose.Labels() {
		known[label] = true
	}
	for label, n := range counts {
		if !known[label] && n > 0 {
			extra = append(extra, LabelCount{Label: label, Count: n})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Label < extra[j].Label })
	return append(out, extra...)
}

// CaseLabels returns the distinct diagnosis labels of a result, in first-seen order
func CaseLabels(result *core.ValidationResult) []string {
	if result == nil {
		return nil
	}
	seen := make(map[diagnose.Label]bool)
	var labels []string
	for _, d := range result.Diagnoses {
		if !seen[d.Label] {
			seen[d.Label] = true
			labels = append(labels, string(d.Label))
		}
	}
	return labels
}

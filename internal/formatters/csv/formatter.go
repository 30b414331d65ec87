// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"ocr-datecheck/internal/core"
	"ocr-datecheck/internal/formatters"
	"ocr-datecheck/internal/formatters/shared"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values, one row per case, for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

var baseHeaders = []string{
	"case", "type", "status", "grade", "accuracy", "precision",
	"reference", "candidate", "matched", "missing", "extra",
	"impossible", "future", "out_of_range", "skip_reason",
}

var verboseHeaders = []string{"missing_dates", "extra_dates", "impossible_dates", "future_dates", "labels"}

func (f *Formatter) Format(report *core.BatchReport, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	headers := baseHeaders
	if options.Verbose {
		headers = append(append([]string{}, baseHeaders...), verboseHeaders...)
	}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range shared.Rows(report) {
		if err := writer.Write(f.createCSVRow(row, options)); err != nil {
			return "", fmt.Errorf("failed to write CSV row for %s: %w", row.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return builder.String(), nil
}

// createCSVRow creates the record for one case
func (f *Formatter) createCSVRow(row shared.Row, options formatters.FormatterOptions) []string {
	record := []string{
		sanitizeFormulaInjection(row.Name),
		sanitizeFormulaInjection(row.Type),
		row.Status,
	}

	r := row.Result
	if r == nil {
		record = append(record, "", "", "", "", "", "", "", "", "", "", "", sanitizeFormulaInjection(row.SkipReason))
		if options.Verbose {
			record = append(record, make([]string, len(verboseHeaders))...)
		}
		return record
	}

	record = append(record,
		string(r.Grade),
		strconv.FormatFloat(r.Accuracy, 'f', 1, 64),
		strconv.FormatFloat(r.Precision, 'f', 1, 64),
		strconv.Itoa(r.ReferenceCount),
		strconv.Itoa(r.CandidateCount),
		strconv.Itoa(r.MatchedCount),
		strconv.Itoa(r.MissingCount),
		strconv.Itoa(r.ExtraCount),
		strconv.Itoa(r.ImpossibleCount),
		strconv.Itoa(r.FutureCount),
		strconv.Itoa(r.OutOfRangeCount),
		"",
	)

	if options.Verbose {
		record = append(record,
			shared.JoinDates(r.MissingDates, ";"),
			shared.JoinDates(r.ExtraDates, ";"),
			shared.JoinDates(r.ImpossibleDates, ";"),
			shared.JoinDates(r.FutureDates, ";"),
			strings.Join(shared.CaseLabels(r), ";"),
		)
	}
	return record
}

// sanitizeFormulaInjection prevents spreadsheet formula execution for
// free-text fields such as case names and skip reasons
func sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	firstChar := field[0]
	if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' {
		return "'" + field
	}

	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

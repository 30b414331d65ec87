// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	stdcsv "encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocr-datecheck/internal/casefile"
	"ocr-datecheck/internal/compare"
	"ocr-datecheck/internal/core"
	"ocr-datecheck/internal/dates"
	"ocr-datecheck/internal/diagnose"
	"ocr-datecheck/internal/formatters"
)

func sampleReport() *core.BatchReport {
	outcomes := []core.CaseOutcome{
		{
			Case:     casefile.Case{Name: "case-1", Type: "claim"},
			Duration: 1500 * time.Millisecond,
			Result: &core.ValidationResult{
				CaseName: "case-1", CaseType: "claim",
				ReferenceCount: 2, CandidateCount: 2, MatchedCount: 1, MissingCount: 1, ExtraCount: 1,
				Accuracy: 50, Precision: 50, Grade: compare.GradeLow,
				FutureCount: 1, FutureDates: []dates.CanonicalDate{"2054-11-10"},
				MissingDates: []dates.CanonicalDate{"2024-11-10"}, ExtraDates: []dates.CanonicalDate{"2054-11-10"},
				MatchedDates: []dates.CanonicalDate{"2024-05-01"},
				Diagnoses: []diagnose.ErrorClassification{{
					Date: "2054-11-10", Label: diagnose.LabelRecognitionError, Cause: diagnose.CauseDigitMisread,
					Confidence: diagnose.ConfidenceHigh, FoundInBlocks: true, Rationale: "year 2054 beyond 2026",
				}},
			},
		},
		{
			Case: casefile.Case{Name: "case-2", Type: "claim"},
			Result: &core.ValidationResult{
				CaseName: "case-2", ReferenceCount: 1, CandidateCount: 1, MatchedCount: 1,
				Accuracy: 100, Precision: 100, Grade: compare.GradeHigh,
				MatchedDates: []dates.CanonicalDate{"2024-01-01"},
			},
		},
		{Case: casefile.Case{Name: "=case-3"}, Skipped: true, SkipReason: "ocr: source file missing"},
	}
	return &core.BatchReport{
		RunID:     "run-1",
		StartedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Duration:  2 * time.Second,
		Profile:   dates.ProfileStrict,
		Outcomes:  outcomes,
		Summary:   core.Summarize(outcomes),
	}
}

func TestFormat(t *testing.T) {
	out, err := NewFormatter().Format(sampleReport(), formatters.FormatterOptions{})
	require.NoError(t, err)

	records, err := stdcsv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, baseHeaders, records[0])
	assert.Equal(t, []string{"case-1", "claim", "validated", "low", "50.0", "50.0", "2", "2", "1", "1", "1", "0", "1", "0", ""}, records[1])
	assert.Equal(t, "'=case-3", records[3][0])
	assert.Equal(t, "skipped", records[3][2])
	assert.Equal(t, "ocr: source file missing", records[3][14])
}

func TestFormat_Verbose(t *testing.T) {
	out, err := NewFormatter().Format(sampleReport(), formatters.FormatterOptions{Verbose: true})
	require.NoError(t, err)

	records, err := stdcsv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	for _, record := range records {
		assert.Len(t, record, len(baseHeaders)+len(verboseHeaders))
	}
	assert.Equal(t, "2024-11-10", records[1][15])
	assert.Equal(t, "recognition-error", records[1][19])
}

func TestSanitizeFormulaInjection(t *testing.T) {
	assert.Equal(t, "'+1", sanitizeFormulaInjection("+1"))
	assert.Equal(t, "'@x", sanitizeFormulaInjection("@x"))
	assert.Equal(t, "case", sanitizeFormulaInjection("case"))
	assert.Equal(t, "", sanitizeFormulaInjection(""))
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

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
	out, err := NewFormatter().Format(sampleReport(), formatters.FormatterOptions{NoColor: true})
	assert.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "CASE"))
	assert.Contains(t, out, "LOW")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "SKIPPED  ocr: source file missing")
	assert.Contains(t, out, "2 validated, 1 skipped")
	assert.Contains(t, out, "75.0% average")
	assert.Contains(t, out, "high 1, medium 0, low 1")
	assert.Contains(t, out, "recognition-error 1")
	assert.NotContains(t, out, "missing:", "samples are verbose only")
	assert.NotContains(t, out, "\x1b[")
}

func TestFormat_Verbose(t *testing.T) {
	out, err := NewFormatter().Format(sampleReport(), formatters.FormatterOptions{NoColor: true, Verbose: true})
	assert.NoError(t, err)
	assert.Contains(t, out, "missing:      2024-11-10")
	assert.Contains(t, out, "future:       2054-11-10")
	assert.Contains(t, out, "! 2054-11-10 recognition-error (digit-misread, high confidence)")
	assert.Contains(t, out, "year 2054 beyond 2026")
}

func TestFormat_Empty(t *testing.T) {
	out, err := NewFormatter().Format(&core.BatchReport{}, formatters.FormatterOptions{})
	assert.NoError(t, err)
	assert.Equal(t, "No cases in manifest.\n", out)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "진단서", truncate("진단서", 3))
}

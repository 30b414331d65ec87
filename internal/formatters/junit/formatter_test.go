// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package junit

import (
	"encoding/xml"
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
	assert.True(t, strings.HasPrefix(out, xml.Header))

	var suites TestSuites
	require.NoError(t, xml.Unmarshal([]byte(strings.TrimPrefix(out, xml.Header)), &suites))
	assert.Equal(t, 3, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Skipped)
	assert.Equal(t, "2.000", suites.Time)

	require.Len(t, suites.TestSuites, 1)
	cases := suites.TestSuites[0].TestCases
	require.Len(t, cases, 3)

	assert.Equal(t, "claim", cases[0].ClassName)
	assert.Equal(t, "1.500", cases[0].Time)
	require.NotNil(t, cases[0].Failure)
	assert.Equal(t, "low-grade", cases[0].Failure.Type)
	assert.Equal(t, "accuracy 50.0% below 60%", cases[0].Failure.Message)
	assert.Contains(t, cases[0].Failure.Content, "Missing: 2024-11-10")
	assert.Contains(t, cases[0].Failure.Content, "2054-11-10: recognition-error")

	assert.Nil(t, cases[1].Failure)
	assert.Empty(t, cases[1].SystemOut)

	assert.Equal(t, "case", cases[2].ClassName)
	require.NotNil(t, cases[2].Skipped)
	assert.Equal(t, "ocr: source file missing", cases[2].Skipped.Message)
}

func TestFormat_VerboseSystemOut(t *testing.T) {
	out, err := NewFormatter().Format(sampleReport(), formatters.FormatterOptions{Verbose: true})
	require.NoError(t, err)
	assert.Contains(t, out, "<system-out>grade high: 1 of 1 reference dates matched, 0 extra</system-out>")
}

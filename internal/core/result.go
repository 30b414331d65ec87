// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"time"

	"ocr-datecheck/internal/casefile"
	"ocr-datecheck/internal/compare"
	"ocr-datecheck/internal/dates"
	"ocr-datecheck/internal/diagnose"
)

// ValidationResult is the per-case outcome of comparing candidate dates
// against the reference. It is built once and not modified afterwards.
type ValidationResult struct {
	CaseName string `json:"case_name" yaml:"case_name"`
	CaseType string `json:"case_type" yaml:"case_type"`

	ReferenceCount int `json:"reference_count" yaml:"reference_count"`
	CandidateCount int `json:"candidate_count" yaml:"candidate_count"`
	MatchedCount   int `json:"matched_count" yaml:"matched_count"`
	MissingCount   int `json:"missing_count" yaml:"missing_count"`
	ExtraCount     int `json:"extra_count" yaml:"extra_count"`

	Accuracy  float64       `json:"accuracy" yaml:"accuracy"`
	Precision float64       `json:"precision" yaml:"precision"`
	Grade     compare.Grade `json:"grade" yaml:"grade"`

	// Totals over the discrepant dates; the lists below are bounded samples
	ImpossibleCount int `json:"impossible_count" yaml:"impossible_count"`
	FutureCount     int `json:"future_count" yaml:"future_count"`
	OutOfRangeCount int `json:"out_of_range_count" yaml:"out_of_range_count"`

	ImpossibleDates []dates.CanonicalDate `json:"impossible_dates" yaml:"impossible_dates"`
	FutureDates     []dates.CanonicalDate `json:"future_dates" yaml:"future_dates"`
	OutOfRangeDates []dates.CanonicalDate `json:"out_of_range_dates" yaml:"out_of_range_dates"`
	MissingDates    []dates.CanonicalDate `json:"missing_dates" yaml:"missing_dates"`
	ExtraDates      []dates.CanonicalDate `json:"extra_dates" yaml:"extra_dates"`
	MatchedDates    []dates.CanonicalDate `json:"matched_dates" yaml:"matched_dates"`

	Diagnoses []diagnose.ErrorClassification `json:"diagnoses,omitempty" yaml:"diagnoses,omitempty"`
}

// CaseOutcome wraps a result, or records why the case was skipped
type CaseOutcome struct {
	Case       casefile.Case     `json:"case" yaml:"case"`
	Result     *ValidationResult `json:"result,omitempty" yaml:"result,omitempty"`
	Skipped    bool              `json:"skipped" yaml:"skipped"`
	SkipReason string            `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Duration   time.Duration     `json:"duration_ns" yaml:"duration_ns"`
}

// BatchReport is the outcome of one run over a manifest
type BatchReport struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Profile   string        `json:"profile" yaml:"profile"`
	Validated bool          `json:"validated_extraction" yaml:"validated_extraction"`

	Outcomes []CaseOutcome `json:"outcomes" yaml:"outcomes"`
	Summary  Summary       `json:"summary" yaml:"summary"`
}

// Results returns the results of the cases that were not skipped
func (r *BatchReport) Results() []*ValidationResult {
	var results []*ValidationResult
	for _, o := range r.Outcomes {
		if !o.Skipped && o.Result != nil {
			results = append(results, o.Result)
		}
	}
	return results
}

// HasGrade reports whether any validated case received grade
func (r *BatchReport) HasGrade(grade compare.Grade) bool {
	for _, result := range r.Results() {
		if result.Grade == grade {
			return true
		}
	}
	return false
}

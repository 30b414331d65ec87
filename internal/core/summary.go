// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"ocr-datecheck/internal/compare"
	"ocr-datecheck/internal/diagnose"
)

// Summary aggregates the results of a batch
type Summary struct {
	TotalCases     int `json:"total_cases" yaml:"total_cases"`
	ValidatedCases int `json:"validated_cases" yaml:"validated_cases"`
	SkippedCases   int `json:"skipped_cases" yaml:"skipped_cases"`

	GradeCounts map[compare.Grade]int `json:"grade_counts" yaml:"grade_counts"`
	LabelCounts map[diagnose.Label]int `json:"label_counts" yaml:"label_counts"`

	AverageAccuracy  float64 `json:"average_accuracy" yaml:"average_accuracy"`
	AveragePrecision float64 `json:"average_precision" yaml:"average_precision"`

	TotalReference  int `json:"total_reference" yaml:"total_reference"`
	TotalCandidate  int `json:"total_candidate" yaml:"total_candidate"`
	TotalMatched    int `json:"total_matched" yaml:"total_matched"`
	TotalMissing    int `json:"total_missing" yaml:"total_missing"`
	TotalExtra      int `json:"total_extra" yaml:"total_extra"`
	TotalImpossible int `json:"total_impossible" yaml:"total_impossible"`
	TotalFuture     int `json:"total_future" yaml:"total_future"`
}

// Summarize aggregates outcomes. Averages cover validated cases only and are
// zero when there are none.
func Summarize(outcomes []CaseOutcome) Summary {
	s := Summary{
		TotalCases:  len(outcomes),
		GradeCounts: make(map[compare.Grade]int),
		LabelCounts: make(map[diagnose.Label]int),
	}
	for _, g := range compare.Grades() {
		s.GradeCounts[g] = 0
	}

	var accuracy, precision float64
	for _, o := range outcomes {
		if o.Skipped || o.Result == nil {
			s.SkippedCases++
			continue
		}
		r := o.Result
		s.ValidatedCases++
		s.GradeCounts[r.Grade]++
		accuracy += r.Accuracy
		precision += r.Precision

		s.TotalReference += r.ReferenceCount
		s.TotalCandidate += r.CandidateCount
		s.TotalMatched += r.MatchedCount
		s.TotalMissing += r.MissingCount
		s.TotalExtra += r.ExtraCount
		s.TotalImpossible += r.ImpossibleCount
		s.TotalFuture += r.FutureCount

		for _, d := range r.Diagnoses {
			s.LabelCounts[d.Label]++
		}
	}

	if s.ValidatedCases > 0 {
		s.AverageAccuracy = accuracy / float64(s.ValidatedCases)
		s.AveragePrecision = precision / float64(s.ValidatedCases)
	}
	return s
}

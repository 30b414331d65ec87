// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"ocr-datecheck/internal/dates"
)

// Comparison is the outcome of comparing a reference date set against a candidate.
// All date lists are sorted ascending.
type Comparison struct {
	Matched []dates.CanonicalDate `json:"matched" yaml:"matched"`
	Missing []dates.CanonicalDate `json:"missing" yaml:"missing"`
	Extra   []dates.CanonicalDate `json:"extra" yaml:"extra"`

	ReferenceCount int `json:"reference_count" yaml:"reference_count"`
	CandidateCount int `json:"candidate_count" yaml:"candidate_count"`
}

// Compare computes matched = R ∩ C, missing = R − C and extra = C − R over
// canonical keys. The caller decides which side is the reference.
func Compare(reference, candidate dates.DateSet) Comparison {
	result := Comparison{
		Matched:        []dates.CanonicalDate{},
		Missing:        []dates.CanonicalDate{},
		Extra:          []dates.CanonicalDate{},
		ReferenceCount: len(reference),
		CandidateCount: len(candidate),
	}

	for _, date := range reference.Sorted() {
		if candidate.Has(date) {
			result.Matched = append(result.Matched, date)
		} else {
			result.Missing = append(result.Missing, date)
		}
	}
	for _, date := range candidate.Sorted() {
		if !reference.Has(date) {
			result.Extra = append(result.Extra, date)
		}
	}

	return result
}

// Accuracy is |matched| / |R| × 100. An empty reference yields 100.
func (c Comparison) Accuracy() float64 {
	if c.ReferenceCount == 0 {
		return 100.0
	}
	return float64(len(c.Matched)) / float64(c.ReferenceCount) * 100
}

// Coverage is the share of reference dates present in the candidate.
// It equals Accuracy when the reference is the ground truth.
func (c Comparison) Coverage() float64 {
	return c.Accuracy()
}

// Precision is |matched| / |C| × 100. An empty candidate yields 0.
func (c Comparison) Precision() float64 {
	if c.CandidateCount == 0 {
		return 0.0
	}
	return float64(len(c.Matched)) / float64(c.CandidateCount) * 100
}

// Discrepancies returns missing followed by extra dates
func (c Comparison) Discrepancies() []dates.CanonicalDate {
	result := make([]dates.CanonicalDate, 0, len(c.Missing)+len(c.Extra))
	result = append(result, c.Missing...)
	return append(result, c.Extra...)
}

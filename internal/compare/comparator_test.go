// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ocr-datecheck/internal/dates"
)

func TestCompare_Basic(t *testing.T) {
	ref := dates.NewDateSet("2024-05-01", "2024-11-10", "2023-01-01")
	cand := dates.NewDateSet("2024-05-01", "2023-01-01", "2054-11-10")

	c := Compare(ref, cand)
	assert.Equal(t, []dates.CanonicalDate{"2023-01-01", "2024-05-01"}, c.Matched)
	assert.Equal(t, []dates.CanonicalDate{"2024-11-10"}, c.Missing)
	assert.Equal(t, []dates.CanonicalDate{"2054-11-10"}, c.Extra)
	assert.InDelta(t, 66.666, c.Accuracy(), 0.01)
	assert.InDelta(t, 66.666, c.Precision(), 0.01)
	assert.Equal(t, c.Accuracy(), c.Coverage())
	assert.Equal(t, []dates.CanonicalDate{"2024-11-10", "2054-11-10"}, c.Discrepancies())
}

func TestCompare_Symmetry(t *testing.T) {
	a := dates.NewDateSet("2024-01-01", "2024-02-02", "2024-03-03")
	b := dates.NewDateSet("2024-02-02", "2024-04-04")

	ab := Compare(a, b)
	ba := Compare(b, a)
	assert.Equal(t, ab.Matched, ba.Matched)
	assert.Equal(t, ab.Extra, ba.Missing)
	assert.Equal(t, ab.Missing, ba.Extra)
	assert.Equal(t, ab.Precision(), ba.Accuracy())
}

func TestCompare_EmptyReferenceIsFullAccuracy(t *testing.T) {
	c := Compare(dates.DateSet{}, dates.NewDateSet("2024-05-01", "2030-01-01"))
	assert.Equal(t, 100.0, c.Accuracy())
	assert.Equal(t, 0.0, c.Precision())
	assert.Len(t, c.Extra, 2)

	both := Compare(dates.DateSet{}, dates.DateSet{})
	assert.Equal(t, 100.0, both.Accuracy())
	assert.Equal(t, 0.0, both.Precision())
	assert.NotNil(t, both.Matched)
}

func TestCompare_EmptyCandidate(t *testing.T) {
	c := Compare(dates.NewDateSet("2024-05-01"), nil)
	assert.Equal(t, 0.0, c.Accuracy())
	assert.Equal(t, 0.0, c.Precision())
	assert.Equal(t, []dates.CanonicalDate{"2024-05-01"}, c.Missing)
}

func TestCompare_KeysOnly(t *testing.T) {
	ref := dates.Extract("2024.5.1")
	cand := dates.Extract("2024년 5월 1일")
	c := Compare(ref, cand)
	assert.Equal(t, 100.0, c.Accuracy())
	assert.Equal(t, 100.0, c.Precision())
}

func TestClassifyGrade_Boundaries(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     Grade
	}{
		{100.0, GradeHigh},
		{80.0, GradeHigh},
		{79.999, GradeMedium},
		{60.0, GradeMedium},
		{59.999, GradeLow},
		{0.0, GradeLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyGrade(tc.accuracy), "accuracy %v", tc.accuracy)
	}
}

func TestGradeRank(t *testing.T) {
	assert.Greater(t, GradeHigh.Rank(), GradeMedium.Rank())
	assert.Greater(t, GradeMedium.Rank(), GradeLow.Rank())
	assert.Equal(t, []Grade{GradeHigh, GradeMedium, GradeLow}, Grades())
}

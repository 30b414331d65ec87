// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compare

// Grade is the three-tier ordinal rating of an accuracy percentage
type Grade string

const (
	GradeHigh   Grade = "high"
	GradeMedium Grade = "medium"
	GradeLow    Grade = "low"
)

// Tier lower bounds (inclusive)
const (
	HighThreshold   = 80.0
	MediumThreshold = 60.0
)

// ClassifyGrade maps [80,100] to high, [60,80) to medium and anything lower to low
func ClassifyGrade(accuracy float64) Grade {
	switch {
	case accuracy >= HighThreshold:
		return GradeHigh
	case accuracy >= MediumThreshold:
		return GradeMedium
	default:
		return GradeLow
	}
}

// Grades lists every grade from best to worst
func Grades() []Grade {
	return []Grade{GradeHigh, GradeMedium, GradeLow}
}

// Rank orders grades for sorting; higher is better
func (g Grade) Rank() int {
	switch g {
	case GradeHigh:
		return 2
	case GradeMedium:
		return 1
	default:
		return 0
	}
}

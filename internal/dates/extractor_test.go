// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestExtract_SeparatorStylesCollapse(t *testing.T) {
	inputs := []string{
		"2024-5-1",
		"2024.05.01",
		"2024/5/01",
		"2024년 5월 1일",
		"2024년5월1일",
		"2024 년 05 월 01 일",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := Extract(input)
			assert.Equal(t, []CanonicalDate{"2024-05-01"}, got.Sorted())
		})
	}
}

func TestExtract_KeepsFirstLiteral(t *testing.T) {
	got := Extract("slash 2024/5/1 then hyphen 2024-05-01 and dot 2024.5.1")
	require.Len(t, got, 1)
	// patterns are applied in priority order, hyphen first
	assert.Equal(t, "2024-05-01", got.Literal("2024-05-01"))

	got = Extract("2024.5.1 and later 2024.05.01")
	assert.Equal(t, "2024.5.1", got.Literal("2024-05-01"))
}

func TestExtract_MixedText(t *testing.T) {
	got := Extract("계약일: 2024.05.01, 사고발생일: 2024-11-10, 입원 2023년 12월 3일")
	assert.Equal(t, []CanonicalDate{"2023-12-03", "2024-05-01", "2024-11-10"}, got.Sorted())
}

func TestExtract_RejectsNonFourDigitYears(t *testing.T) {
	cases := []string{
		"12024-05-01",
		"24-05-01",
		"ref 202405-01-01",
		"2024-05-123",
	}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			assert.Empty(t, Extract(input))
		})
	}
}

func TestExtract_KeepsImpossibleDatesInRawMode(t *testing.T) {
	got := Extract("2024-13-01 2023-02-29 2024-00-10")
	assert.Equal(t, []CanonicalDate{"2023-02-29", "2024-00-10", "2024-13-01"}, got.Sorted())
}

func TestExtract_ValidatedModeDiscards(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	v := NewValidator(StrictProfile()).WithClock(func() time.Time { return now })
	e := NewExtractor(WithValidator(v))
	require.True(t, e.Validated())

	got := e.Extract("2024-13-01 2023-02-29 1900-01-01 2024-02-29 2030-06-01 2025-02-01")
	assert.Equal(t, []CanonicalDate{"2024-02-29", "2025-02-01"}, got.Sorted())

	tolerant := NewExtractor(WithValidator(
		NewValidator(InsuranceMaturityProfile()).WithClock(func() time.Time { return now }),
	))
	assert.True(t, tolerant.Extract("만기 2054-11-10").Has("2054-11-10"))
}

func TestExtract_DecomposedHangul(t *testing.T) {
	decomposed := norm.NFD.String("2024년 5월 1일")
	require.NotEqual(t, "2024년 5월 1일", decomposed)
	assert.True(t, Extract(decomposed).Has("2024-05-01"))
}

func TestExtract_InvalidUTF8IsRecovered(t *testing.T) {
	text := "bad \xff\xfe bytes 2024-05-01"
	assert.NotPanics(t, func() {
		assert.True(t, Extract(text).Has("2024-05-01"))
	})
}

func TestOccurrences_OrderedByOffset(t *testing.T) {
	occ := ExtractOrdered("2024.03.02 first, then 2024-01-05, again 2024.03.02")
	require.Len(t, occ, 3)
	assert.Equal(t, CanonicalDate("2024-03-02"), occ[0].Date)
	assert.Equal(t, "dot", occ[0].Pattern)
	assert.Equal(t, CanonicalDate("2024-01-05"), occ[1].Date)
	assert.Equal(t, CanonicalDate("2024-03-02"), occ[2].Date)
	assert.Less(t, occ[0].Offset, occ[1].Offset)
	assert.Less(t, occ[1].Offset, occ[2].Offset)
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want CanonicalDate
	}{
		{"2024-05-01", "2024-05-01"},
		{"2024-5-1", "2024-05-01"},
		{"2024.5.01", "2024-05-01"},
		{" 2024/05/1 ", "2024-05-01"},
		{"2024년 5월 1일", "2024-05-01"},
		{"2024 년 05 월 1 일 ", "2024-05-01"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Normalize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			again, err := Normalize(string(got))
			require.NoError(t, err)
			assert.Equal(t, got, again, "normalizing a canonical date must be a no-op")
		})
	}

	for _, in := range []string{"not a date", "2024-5-1 and more", "접수 2024년 5월 1일", "2024-05-01 2024-06-01"} {
		t.Run("rejects "+in, func(t *testing.T) {
			_, err := Normalize(in)
			assert.Error(t, err)
		})
	}
}

func TestDateSet(t *testing.T) {
	s := NewDateSet("2024-05-01")
	assert.False(t, s.Add("2024-05-01", "2024.5.1"))
	assert.Equal(t, "2024-05-01", s.Literal("2024-05-01"))
	assert.True(t, s.Add("2023-01-01", "2023년 1월 1일"))

	other := DateSet{"2023-01-01": "2023-1-1", "2022-02-02": "2022/2/2"}
	u := s.Union(other)
	assert.Equal(t, []CanonicalDate{"2022-02-02", "2023-01-01", "2024-05-01"}, u.Sorted())
	assert.Equal(t, "2023년 1월 1일", u.Literal("2023-01-01"))
	assert.Len(t, s, 2, "union must not modify the receiver")
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package diagnose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"ocr-datecheck/internal/blocks"
	"ocr-datecheck/internal/dates"
)

func TestLocate(t *testing.T) {
	list := []blocks.Block{
		{Text: "접수번호 12024-05-012"},
		{Text: "발행일 2024.5.1"},
		{Text: "입원일 2024-05-01"},
	}

	t.Run("canonical form wins across blocks", func(t *testing.T) {
		assert.Equal(t, 2, Locate(list, "2024-05-01"))
	})
	t.Run("digit boundaries", func(t *testing.T) {
		assert.Equal(t, -1, Locate(list[:1], "2024-05-01"))
	})
	t.Run("other renderings", func(t *testing.T) {
		assert.Equal(t, 1, Locate(list[:2], "2024-05-01"))
	})
	t.Run("decomposed hangul", func(t *testing.T) {
		nfd := []blocks.Block{{Text: norm.NFD.String("2023년 3월 7일 퇴원")}}
		assert.Equal(t, 0, Locate(nfd, "2023-03-07"))
	})
	t.Run("absent", func(t *testing.T) {
		assert.Equal(t, -1, Locate(list, "1999-01-01"))
		assert.Equal(t, -1, Locate(nil, "1999-01-01"))
	})
}

func TestLocate_AgreesWithExtractor(t *testing.T) {
	tests := []struct {
		name string
		text string
		date dates.CanonicalDate
	}{
		{"dot mixed padding", "입원 2024.5.01", "2024-05-01"},
		{"hyphen mixed padding", "퇴원 2024-05-1", "2024-05-01"},
		{"slash unpadded", "2024/5/1 외래", "2024-05-01"},
		{"korean spaced units", "검사 2024 년 5 월 1 일", "2024-05-01"},
		{"korean partly spaced", "2024년5월 1일 진단", "2024-05-01"},
		{"korean padded", "2024년 05월 01일", "2024-05-01"},
		{"decomposed korean", norm.NFD.String("수술 2024 년 11 월 3 일"), "2024-11-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, dates.Extract(tt.text).Has(tt.date))
			assert.Equal(t, 0, Locate([]blocks.Block{{Text: tt.text}}, tt.date))

			c := NewClassifier(DefaultSettings())
			assert.NotEqual(t, LabelNotFound, c.Classify(tt.date, []blocks.Block{{Text: tt.text}}).Label)
		})
	}
}

func TestVocabulary(t *testing.T) {
	v := NewVocabulary([]string{"CT", " MRI ", "", "CT"})
	assert.Equal(t, []string{"CT", "MRI"}, v.Terms())
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, []string{"MRI"}, v.Match("brain MRI, ct follow-up"))
	assert.Empty(t, v.Match(""))

	var none *Vocabulary
	assert.Empty(t, none.Match("CT"))
	assert.Greater(t, DefaultVocabulary().Len(), 30)
}

func TestBuildSequence(t *testing.T) {
	list := []blocks.Block{
		{Page: 1, Text: "2024-03-01", BBox: blocks.BoundingBox{Y: 5}},
		{Page: 0, Text: "2024-02-01 and 2024-01-15, again 2024-02-01", BBox: blocks.BoundingBox{Y: 50}},
		{Page: 0, Text: "2024-13-40 bogus 2023-12-31", BBox: blocks.BoundingBox{Y: 10}},
	}

	entries := BuildSequence(list)
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = string(e.Date)
	}
	assert.Equal(t, []string{"2023-12-31", "2024-02-01", "2024-01-15", "2024-03-01"}, got)

	pos := Position(entries, "2024-01-15", 5)
	assert.True(t, pos.Found)
	assert.Equal(t, 2, pos.Position)
	assert.Len(t, pos.Before, 2)
	assert.Len(t, pos.After, 1)

	missing := Position(entries, "2030-01-01", 5)
	assert.False(t, missing.Found)
	assert.Equal(t, -1, missing.Position)
	assert.Equal(t, 4, missing.Total)
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package diagnose

import (
	"sort"

	"ocr-datecheck/internal/blocks"
	"ocr-datecheck/internal/dates"
)

// SequenceEntry is one calendar-valid date in the document's chronological index
type SequenceEntry struct {
	Date  dates.CanonicalDate `json:"date" yaml:"date"`
	Page  int                 `json:"page" yaml:"page"`
	Block int                 `json:"block" yaml:"block"`
	Y     float64             `json:"y" yaml:"y"`

	offset int
}

// SequencePosition places a target date within the chronological index
type SequencePosition struct {
	Found    bool            `json:"found" yaml:"found"`
	Total    int             `json:"total" yaml:"total"`
	Position int             `json:"position" yaml:"position"`
	Before   []SequenceEntry `json:"before" yaml:"before"`
	After    []SequenceEntry `json:"after" yaml:"after"`
}

// BuildSequence extracts every calendar-valid date of every block and orders
// the entries by page, then vertical position. Ties keep block order, then
// position inside the block. A date repeated within one block appears once.
func BuildSequence(list []blocks.Block) []SequenceEntry {
	var entries []SequenceEntry
	for i, b := range list {
		seen := make(map[dates.CanonicalDate]bool)
		for _, occ := range dates.ExtractOrdered(b.Text) {
			if seen[occ.Date] || !dates.IsCalendarDate(occ.Date) {
				continue
			}
			seen[occ.Date] = true
			entries = append(entries, SequenceEntry{
				Date:   occ.Date,
				Page:   b.Page,
				Block:  i,
				Y:      b.BBox.Y,
				offset: occ.Offset,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Block != b.Block {
			return a.Block < b.Block
		}
		return a.offset < b.offset
	})
	return entries
}

// Position finds the first entry for target and returns up to neighbors entries
// on each side
func Position(entries []SequenceEntry, target dates.CanonicalDate, neighbors int) SequencePosition {
	if neighbors < 0 {
		neighbors = 0
	}
	pos := SequencePosition{
		Total:    len(entries),
		Position: -1,
		Before:   []SequenceEntry{},
		After:    []SequenceEntry{},
	}
	for i, e := range entries {
		if e.Date == target {
			pos.Found = true
			pos.Position = i
			break
		}
	}
	if !pos.Found {
		return pos
	}

	start := pos.Position - neighbors
	if start < 0 {
		start = 0
	}
	end := pos.Position + neighbors + 1
	if end > len(entries) {
		end = len(entries)
	}
	pos.Before = append(pos.Before, entries[start:pos.Position]...)
	pos.After = append(pos.After, entries[pos.Position+1:end]...)
	return pos
}

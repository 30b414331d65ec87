// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package blocks

import (
	"math"
	"sort"
	"strings"
)

// PageSeparator is written between pages when blocks are merged into reading order
const PageSeparator = "=== PAGE BREAK ==="

// BoundingBox defines the rectangular area of a block in page-local coordinates
type BoundingBox struct {
	// X is the left coordinate
	X float64 `json:"x" yaml:"x"`

	// Y is the top coordinate
	Y float64 `json:"y" yaml:"y"`

	// Width is the width of the box
	Width float64 `json:"width" yaml:"width"`

	// Height is the height of the box
	Height float64 `json:"height" yaml:"height"`
}

// Center returns the center point of the box
func (b BoundingBox) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Block is a unit of recognized text produced by the upstream OCR system.
// Blocks are treated as immutable values.
type Block struct {
	// Page is the zero-based page index
	Page int `json:"page" yaml:"page"`

	// Text is the recognized text content
	Text string `json:"text" yaml:"text"`

	// BBox is the block's bounding box on its page
	BBox BoundingBox `json:"bbox" yaml:"bbox"`

	// Confidence is the OCR confidence score, nil when the engine did not report one
	Confidence *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Center returns the center point of the block's bounding box
func (b Block) Center() (float64, float64) {
	return b.BBox.Center()
}

// Distance returns the Euclidean distance between the centers of two blocks.
// Blocks on different pages are infinitely far apart.
func Distance(a, b Block) float64 {
	if a.Page != b.Page {
		return math.Inf(1)
	}
	x1, y1 := a.Center()
	x2, y2 := b.Center()
	return math.Hypot(x1-x2, y1-y2)
}

// Neighbor is a block referenced by its index in the original block list
type Neighbor struct {
	Index    int     `json:"index" yaml:"index"`
	Page     int     `json:"page" yaml:"page"`
	Text     string  `json:"text" yaml:"text"`
	Distance float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
}

// Window returns the blocks at most radius positions before and after index in
// the original block order, including the block at index itself.
func Window(list []Block, index, radius int) []Neighbor {
	if index < 0 || index >= len(list) {
		return nil
	}
	start := max(0, index-radius)
	end := min(len(list), index+radius+1)

	result := make([]Neighbor, 0, end-start)
	for i := start; i < end; i++ {
		result = append(result, Neighbor{Index: i, Page: list[i].Page, Text: list[i].Text})
	}
	return result
}

// Nearby returns the blocks on the same page as list[index] whose centers lie
// strictly within maxDistance of it, sorted by ascending distance. The target
// block itself comes first at distance 0. At most limit blocks are returned
// when limit > 0.
func Nearby(list []Block, index int, maxDistance float64, limit int) []Neighbor {
	if index < 0 || index >= len(list) {
		return nil
	}
	target := list[index]

	var result []Neighbor
	for i, block := range list {
		if block.Page != target.Page {
			continue
		}
		d := Distance(target, block)
		if d < maxDistance {
			result = append(result, Neighbor{Index: i, Page: block.Page, Text: block.Text, Distance: d})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// JoinText concatenates block texts in their original order, one block per line
func JoinText(list []Block) string {
	texts := make([]string, len(list))
	for i, block := range list {
		texts[i] = block.Text
	}
	return strings.Join(texts, "\n")
}

// Merge renders blocks in reading order (page, then top coordinate) as one
// continuous text, with a separator line between pages.
func Merge(list []Block) string {
	sorted := make([]Block, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Page != sorted[j].Page {
			return sorted[i].Page < sorted[j].Page
		}
		return sorted[i].BBox.Y < sorted[j].BBox.Y
	})

	var builder strings.Builder
	lastPage := -1
	for _, block := range sorted {
		if lastPage != -1 && block.Page != lastPage {
			builder.WriteString("\n\n" + PageSeparator + "\n\n")
		} else if builder.Len() > 0 {
			builder.WriteString(" ")
		}
		lastPage = block.Page
		builder.WriteString(block.Text)
	}

	return strings.TrimSpace(builder.String())
}

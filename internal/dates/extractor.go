// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dates

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Pattern is one supported date rendering
type Pattern struct {
	// Name identifies the pattern in occurrences ("hyphen", "dot", "slash", "korean")
	Name string

	regex *regexp.Regexp

	// guardTrailing rejects matches whose day group is followed by another digit
	guardTrailing bool
}

// DefaultPatterns returns the four supported renderings in priority order.
// When the same canonical date is produced by several patterns the literal of
// the earliest pattern is kept.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "hyphen", regex: regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`), guardTrailing: true},
		{Name: "dot", regex: regexp.MustCompile(`(\d{4})\.(\d{1,2})\.(\d{1,2})`), guardTrailing: true},
		{Name: "slash", regex: regexp.MustCompile(`(\d{4})/(\d{1,2})/(\d{1,2})`), guardTrailing: true},
		{Name: "korean", regex: regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일`)},
	}
}

// Occurrence is a single date-like match in a text
type Occurrence struct {
	Date    CanonicalDate
	Literal string
	Offset  int
	Pattern string
}

// Extractor scans free text for date-like substrings.
// An Extractor holds no mutable state and is safe for concurrent use.
type Extractor struct {
	patterns  []Pattern
	validator *Validator
}

// Option configures an Extractor
type Option func(*Extractor)

// WithValidator switches the extractor to validated mode: dates the validator
// does not accept are discarded before insertion.
func WithValidator(v *Validator) Option {
	return func(e *Extractor) {
		e.validator = v
	}
}

// WithPatterns replaces the default pattern set
func WithPatterns(patterns []Pattern) Option {
	return func(e *Extractor) {
		e.patterns = patterns
	}
}

// NewExtractor creates an extractor. Without options it runs in raw mode with
// the default patterns.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{patterns: DefaultPatterns()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = NewExtractor()

// Extract returns every date-like token in text using the default raw extractor
func Extract(text string) DateSet {
	return defaultExtractor.Extract(text)
}

// ExtractOrdered returns every occurrence in text ordered by position, using
// the default raw extractor
func ExtractOrdered(text string) []Occurrence {
	return defaultExtractor.Occurrences(text)
}

// Validated reports whether the extractor discards invalid dates
func (e *Extractor) Validated() bool {
	return e.validator != nil
}

// Extract returns a DateSet with every canonical date found in text.
// Patterns are applied in priority order and the first literal wins.
func (e *Extractor) Extract(text string) DateSet {
	text = prepare(text)
	set := make(DateSet)
	for _, p := range e.patterns {
		for _, occ := range e.scan(p, text) {
			set.Add(occ.Date, occ.Literal)
		}
	}
	return set
}

// Occurrences returns every accepted match in text sorted by byte offset in
// the normalized text. The same date may appear more than once.
func (e *Extractor) Occurrences(text string) []Occurrence {
	text = prepare(text)
	var result []Occurrence
	for _, p := range e.patterns {
		result = append(result, e.scan(p, text)...)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Offset < result[j].Offset
	})
	return result
}

func (e *Extractor) scan(p Pattern, text string) []Occurrence {
	var result []Occurrence
	for _, loc := range p.regex.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]

		// a year of more than four digits must not match
		if start > 0 && isDigit(text[start-1]) {
			continue
		}
		if p.guardTrailing && end < len(text) && isDigit(text[end]) {
			continue
		}

		date := Canonicalize(text[loc[2]:loc[3]], text[loc[4]:loc[5]], text[loc[6]:loc[7]])
		if e.validator != nil && !e.validator.Accept(date) {
			continue
		}

		result = append(result, Occurrence{
			Date:    date,
			Literal: text[start:end],
			Offset:  start,
			Pattern: p.Name,
		})
	}
	return result
}

// prepare repairs invalid UTF-8 and composes decomposed Hangul so the Korean
// pattern matches text produced by NFD-normalizing sources.
func prepare(text string) string {
	if text == "" {
		return text
	}
	text = strings.ToValidUTF8(text, "�")
	return norm.NFC.String(text)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

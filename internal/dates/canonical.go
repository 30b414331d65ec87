// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dates

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CanonicalDate is a date rendered as YYYY-MM-DD with zero-padded month and day.
// It is the join key between reference and candidate date sets.
type CanonicalDate string

// Canonicalize joins year, month and day groups into canonical form.
// Month and day are left-padded with zeros to two digits.
func Canonicalize(year, month, day string) CanonicalDate {
	return CanonicalDate(year + "-" + pad2(month) + "-" + pad2(day))
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}

// Parts splits a canonical date into numeric year, month and day.
// ok is false when the value is not three dash-separated numbers.
func (d CanonicalDate) Parts() (year, month, day int, ok bool) {
	fields := strings.Split(string(d), "-")
	if len(fields) != 3 {
		return 0, 0, 0, false
	}

	values := make([]int, 3)
	for i, field := range fields {
		if field == "" {
			return 0, 0, 0, false
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return 0, 0, 0, false
		}
		values[i] = n
	}
	return values[0], values[1], values[2], true
}

// Year returns the numeric year, or 0 when the value cannot be parsed
func (d CanonicalDate) Year() int {
	y, _, _, _ := d.Parts()
	return y
}

func (d CanonicalDate) String() string {
	return string(d)
}

var (
	literalDate       = regexp.MustCompile(`^\s*(\d{4})\s*[-./]\s*(\d{1,2})\s*[-./]\s*(\d{1,2})\s*$`)
	koreanLiteralDate = regexp.MustCompile(`^\s*(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일\s*$`)
)

// Normalize converts a standalone date literal into canonical form. The
// literal uses a hyphen, dot or slash separator or the Korean 년/월/일 units,
// and nothing else may surround it but whitespace. Already-canonical input is
// returned unchanged.
func Normalize(literal string) (CanonicalDate, error) {
	m := literalDate.FindStringSubmatch(literal)
	if m == nil {
		m = koreanLiteralDate.FindStringSubmatch(norm.NFC.String(literal))
	}
	if m == nil {
		return "", fmt.Errorf("not a date literal: %q", literal)
	}
	return Canonicalize(m[1], m[2], m[3]), nil
}

// DateSet maps each canonical date to the first literal substring that produced it.
// Sets are compared by key only; the literal is kept for diagnostic display.
type DateSet map[CanonicalDate]string

// NewDateSet builds a set from canonical dates, using each date as its own literal
func NewDateSet(values ...CanonicalDate) DateSet {
	set := make(DateSet, len(values))
	for _, v := range values {
		set.Add(v, string(v))
	}
	return set
}

// Add records date with its literal unless the date is already present.
// It reports whether the date was inserted.
func (s DateSet) Add(date CanonicalDate, literal string) bool {
	if _, exists := s[date]; exists {
		return false
	}
	s[date] = literal
	return true
}

// Has reports whether date is in the set
func (s DateSet) Has(date CanonicalDate) bool {
	_, ok := s[date]
	return ok
}

// Literal returns the first literal recorded for date
func (s DateSet) Literal(date CanonicalDate) string {
	return s[date]
}

// Sorted returns the set's dates in ascending order
func (s DateSet) Sorted() []CanonicalDate {
	result := make([]CanonicalDate, 0, len(s))
	for date := range s {
		result = append(result, date)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Union returns a new set with the dates of s and other. Literals from s win.
func (s DateSet) Union(other DateSet) DateSet {
	result := make(DateSet, len(s)+len(other))
	for date, literal := range s {
		result[date] = literal
	}
	for date, literal := range other {
		result.Add(date, literal)
	}
	return result
}

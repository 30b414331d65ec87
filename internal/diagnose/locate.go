// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package diagnose

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"ocr-datecheck/internal/blocks"
	"ocr-datecheck/internal/dates"
)

// Locate returns the index of the first block containing date, or -1.
// The canonical rendering is searched across every block before any other
// rendering is tried. Other renderings are found with the default extractor,
// so any literal it accepts for date is located. A match must not be glued to
// surrounding digits.
func Locate(list []blocks.Block, date dates.CanonicalDate) int {
	if len(list) == 0 {
		return -1
	}
	texts := make([]string, len(list))
	for i, b := range list {
		texts[i] = norm.NFC.String(b.Text)
	}

	for i, text := range texts {
		if containsToken(text, string(date)) {
			return i
		}
	}

	for i, text := range texts {
		for _, occ := range dates.ExtractOrdered(text) {
			if occ.Date == date {
				return i
			}
		}
	}
	return -1
}

// containsToken reports whether token occurs in text with no digit directly
// before or after it
func containsToken(text, token string) bool {
	if token == "" {
		return false
	}
	offset := 0
	for {
		i := strings.Index(text[offset:], token)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(token)
		if (start == 0 || !isDigit(text[start-1])) && (end == len(text) || !isDigit(text[end])) {
			return true
		}
		offset = start + 1
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package diagnose

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Vocabulary is a set of domain terms whose presence near a date suggests the
// date belongs to a real clinical event. Matching is case-sensitive substring
// search, in the order the terms were given.
type Vocabulary struct {
	terms []string
}

// NewVocabulary builds a vocabulary from terms. Blank and duplicate terms are dropped.
func NewVocabulary(terms []string) *Vocabulary {
	seen := make(map[string]bool, len(terms))
	v := &Vocabulary{terms: make([]string, 0, len(terms))}
	for _, term := range terms {
		term = norm.NFC.String(strings.TrimSpace(term))
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		v.terms = append(v.terms, term)
	}
	return v
}

// DefaultKeywords returns the medical vocabulary used for claim documents:
// procedures, departments, exam names, record types and visit terms.
func DefaultKeywords() []string {
	return []string{
		// procedures
		"진단", "검사", "수술", "처방", "투약", "치료", "입원", "퇴원",
		"외래", "응급", "수혈", "주사", "촬영", "판독",
		// departments
		"내과", "외과", "정형외과", "신경외과", "산부인과", "소아과", "이비인후과",
		// exams
		"CT", "MRI", "X-ray", "초음파", "혈액검사", "소변검사",
		// records
		"처방전", "진료기록", "소견서", "의견서", "진단서",
		// visits
		"초진", "재진", "내원", "방문", "경과", "추적",
	}
}

// DefaultVocabulary returns a vocabulary over DefaultKeywords
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(DefaultKeywords())
}

// Terms returns a copy of the vocabulary's terms
func (v *Vocabulary) Terms() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.terms...)
}

// Len returns the number of terms
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Match returns every term that occurs in text
func (v *Vocabulary) Match(text string) []string {
	found := []string{}
	if v == nil || text == "" {
		return found
	}
	text = norm.NFC.String(text)
	for _, term := range v.terms {
		if strings.Contains(text, term) {
			found = append(found, term)
		}
	}
	return found
}

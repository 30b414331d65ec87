// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"

	"ocr-datecheck/internal/blocks"
	"ocr-datecheck/internal/casefile"
	"ocr-datecheck/internal/compare"
	"ocr-datecheck/internal/config"
	"ocr-datecheck/internal/dates"
	"ocr-datecheck/internal/diagnose"
)

// fallbackMissingDiagnoses is how many missing dates are diagnosed when no
// discrepant date was flagged
const fallbackMissingDiagnoses = 3

// CaseInput is a materialized case: reference text and candidate source
type CaseInput struct {
	Name string
	Type string

	Reference string
	Candidate casefile.Source

	// SupplementaryDates are date literals produced by other extractors; they
	// are normalized and unioned into the candidate set
	SupplementaryDates []string
}

// Settings configures an Engine
type Settings struct {
	Validator           *dates.Validator
	ValidatedExtraction bool
	Samples             config.Samples

	// Classifier diagnoses discrepant dates; nil disables diagnosis
	Classifier *diagnose.Classifier
}

// Engine validates cases. It holds no per-case state and is safe for concurrent use.
type Engine struct {
	validator  *dates.Validator
	extractor  *dates.Extractor
	classifier *diagnose.Classifier
	samples    config.Samples
}

// NewEngine creates an engine. A nil validator selects the strict profile.
func NewEngine(settings Settings) *Engine {
	validator := settings.Validator
	if validator == nil {
		validator = dates.NewValidator(dates.StrictProfile())
	}

	samples := settings.Samples
	if samples == (config.Samples{}) {
		samples = config.DefaultSamples()
	}

	extractor := dates.NewExtractor()
	if settings.ValidatedExtraction {
		extractor = dates.NewExtractor(dates.WithValidator(validator))
	}

	return &Engine{
		validator:  validator,
		extractor:  extractor,
		classifier: settings.Classifier,
		samples:    samples,
	}
}

// GetComponentName returns the component identifier
func (e *Engine) GetComponentName() string {
	return "engine"
}

// Validator returns the engine's date validator
func (e *Engine) Validator() *dates.Validator {
	return e.validator
}

// CandidateDates extracts the candidate set, including normalized supplementary dates
func (e *Engine) CandidateDates(in CaseInput) dates.DateSet {
	candidate := e.extractor.Extract(in.Candidate.Text)
	if len(in.SupplementaryDates) == 0 {
		return candidate
	}

	extra := make(dates.DateSet)
	for _, literal := range in.SupplementaryDates {
		date, err := dates.Normalize(literal)
		if err != nil {
			continue
		}
		if e.extractor.Validated() && !e.validator.Accept(date) {
			continue
		}
		extra.Add(date, strings.TrimSpace(literal))
	}
	return candidate.Union(extra)
}

// ValidateCase compares the candidate's dates to the reference's dates and,
// when a classifier is configured, diagnoses the flagged discrepancies.
func (e *Engine) ValidateCase(in CaseInput) *ValidationResult {
	reference := e.extractor.Extract(in.Reference)
	candidate := e.CandidateDates(in)
	cmp := compare.Compare(reference, candidate)

	result := &ValidationResult{
		CaseName:       in.Name,
		CaseType:       in.Type,
		ReferenceCount: cmp.ReferenceCount,
		CandidateCount: cmp.CandidateCount,
		MatchedCount:   len(cmp.Matched),
		MissingCount:   len(cmp.Missing),
		ExtraCount:     len(cmp.Extra),
		Accuracy:       cmp.Accuracy(),
		Precision:      cmp.Precision(),
		Grade:          compare.ClassifyGrade(cmp.Accuracy()),
		MissingDates:   head(cmp.Missing, e.samples.Missing),
		ExtraDates:     head(cmp.Extra, e.samples.Extra),
		MatchedDates:   head(cmp.Matched, e.samples.Matched),
	}

	var impossible, future, outOfRange []dates.CanonicalDate
	for _, date := range cmp.Discrepancies() {
		switch e.validator.Check(date) {
		case dates.StatusImpossible:
			impossible = append(impossible, date)
		case dates.StatusFuture:
			future = append(future, date)
		case dates.StatusOutOfRange:
			outOfRange = append(outOfRange, date)
		}
	}
	result.ImpossibleCount = len(impossible)
	result.FutureCount = len(future)
	result.OutOfRangeCount = len(outOfRange)
	result.ImpossibleDates = head(impossible, e.samples.Flagged)
	result.FutureDates = head(future, e.samples.Flagged)
	result.OutOfRangeDates = head(outOfRange, e.samples.Flagged)

	if e.classifier != nil {
		targets := append(append(append([]dates.CanonicalDate{}, impossible...), future...), outOfRange...)
		if len(targets) == 0 {
			targets = head(cmp.Missing, fallbackMissingDiagnoses)
		}
		result.Diagnoses = e.Diagnose(targets, in.Candidate)
	}

	return result
}

// Diagnose classifies each date against the candidate source. Sources without
// positioned blocks are split into one block per line.
func (e *Engine) Diagnose(targets []dates.CanonicalDate, source casefile.Source) []diagnose.ErrorClassification {
	if e.classifier == nil || len(targets) == 0 {
		return nil
	}
	list := source.Blocks
	if len(list) == 0 {
		list = LineBlocks(source.Text)
	}
	return e.classifier.ClassifyAll(targets, list)
}

// LineBlocks turns flat text into one block per non-empty line. Page
// separator lines advance the page; the y coordinate is the line number
// within the page.
func LineBlocks(text string) []blocks.Block {
	var list []blocks.Block
	page, line := 0, 0
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == blocks.PageSeparator {
			page++
			line = 0
			continue
		}
		line++
		if trimmed == "" {
			continue
		}
		list = append(list, blocks.Block{
			Page: page,
			Text: trimmed,
			BBox: blocks.BoundingBox{Y: float64(line)},
		})
	}
	return list
}

// head returns at most n leading elements. A non-positive n yields an empty list.
func head(list []dates.CanonicalDate, n int) []dates.CanonicalDate {
	if n <= 0 {
		return []dates.CanonicalDate{}
	}
	if len(list) > n {
		list = list[:n]
	}
	return append([]dates.CanonicalDate{}, list...)
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package diagnose

import (
	"fmt"
	"strings"
	"time"

	"ocr-datecheck/internal/blocks"
	"ocr-datecheck/internal/dates"
)

// Label is the classified kind of a discrepant date
type Label string

const (
	// LabelNotFound means the date appears in no source block
	LabelNotFound Label = "not-found-in-source"
	// LabelRecognitionError means the located date has an implausible component
	LabelRecognitionError Label = "recognition-error"
	// LabelMisclassified means the located date is calendar-valid but still disagrees with the reference
	LabelMisclassified Label = "misclassified-non-date"
	// LabelInvalidPattern means the located token looks like a date but names no calendar day
	LabelInvalidPattern Label = "invalid-date-pattern"
)

// Labels lists every classification label
func Labels() []Label {
	return []Label{LabelNotFound, LabelRecognitionError, LabelMisclassified, LabelInvalidPattern}
}

// Cause refines a label with the most likely origin of the discrepancy
type Cause string

const (
	CauseBaselineError     Cause = "baseline-error"
	CauseDigitMisread      Cause = "digit-misread"
	CauseNonDateNumeric    Cause = "non-date-numeric"
	CausePlannedEvent      Cause = "planned-event"
	CauseReferenceOmission Cause = "reference-omission"
	CauseUnparsable        Cause = "unparsable"
)

// Confidence qualifies how strongly the evidence supports the classification
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// Location is the position of the block a date was found in
type Location struct {
	Page   int     `json:"page" yaml:"page"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// ErrorClassification explains one discrepant date
type ErrorClassification struct {
	Date       dates.CanonicalDate `json:"date" yaml:"date"`
	Label      Label               `json:"label" yaml:"label"`
	Cause      Cause               `json:"cause" yaml:"cause"`
	Confidence Confidence          `json:"confidence" yaml:"confidence"`

	FoundInBlocks bool      `json:"found_in_blocks" yaml:"found_in_blocks"`
	BlockIndex    int       `json:"block_index" yaml:"block_index"`
	Location      *Location `json:"location,omitempty" yaml:"location,omitempty"`

	Surrounding    []blocks.Neighbor `json:"surrounding,omitempty" yaml:"surrounding,omitempty"`
	SpatiallyClose []blocks.Neighbor `json:"spatially_close,omitempty" yaml:"spatially_close,omitempty"`
	Keywords       []string          `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Sequence       *SequencePosition `json:"sequence,omitempty" yaml:"sequence,omitempty"`

	Rationale string `json:"rationale" yaml:"rationale"`
}

// Settings holds the classifier thresholds
type Settings struct {
	// Window is the number of blocks taken on each side of the found block
	Window int `yaml:"window"`
	// SpatialDistance is the exclusive center-to-center distance bound
	SpatialDistance float64 `yaml:"spatial_distance"`
	// MaxSpatial caps the spatially close blocks reported; 0 means no cap
	MaxSpatial int `yaml:"max_spatial"`
	// SequenceNeighbors is the number of chronological neighbors kept on each side
	SequenceNeighbors int `yaml:"sequence_neighbors"`
	// YearFloor and YearCeiling bound plausible years (inclusive)
	YearFloor   int `yaml:"year_floor"`
	YearCeiling int `yaml:"year_ceiling"`
}

// DefaultSettings returns the thresholds used for claim documents
func DefaultSettings() Settings {
	return Settings{
		Window:            5,
		SpatialDistance:   50,
		MaxSpatial:        10,
		SequenceNeighbors: 5,
		YearFloor:         1950,
		YearCeiling:       2026,
	}
}

// Classifier explains why a date is present on one side of a comparison but
// not the other. It holds no per-call state and is safe for concurrent use.
type Classifier struct {
	settings   Settings
	vocabulary *Vocabulary
	now        func() time.Time

	buildSequence func([]blocks.Block) []SequenceEntry
}

// Option configures a Classifier
type Option func(*Classifier)

// WithVocabulary replaces the default keyword vocabulary
func WithVocabulary(v *Vocabulary) Option {
	return func(c *Classifier) {
		c.vocabulary = v
	}
}

// WithClock sets the source of the evaluation time
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		c.now = now
	}
}

// NewClassifier creates a classifier with the given thresholds
func NewClassifier(settings Settings, opts ...Option) *Classifier {
	c := &Classifier{
		settings:      settings,
		vocabulary:    DefaultVocabulary(),
		now:           time.Now,
		buildSequence: BuildSequence,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings returns the classifier thresholds
func (c *Classifier) Settings() Settings {
	return c.settings
}

// Classify diagnoses a single discrepant date against the source blocks
func (c *Classifier) Classify(date dates.CanonicalDate, list []blocks.Block) ErrorClassification {
	result := ErrorClassification{
		Date:       date,
		BlockIndex: Locate(list, date),
	}

	if result.BlockIndex < 0 {
		result.Label = LabelNotFound
		result.Cause = CauseBaselineError
		result.Confidence = ConfidenceHigh
		result.Rationale = "date does not appear in any source block; the reference may be wrong or OCR dropped the text"
		return result
	}

	found := list[result.BlockIndex]
	result.FoundInBlocks = true
	result.Location = &Location{
		Page:   found.Page,
		X:      found.BBox.X,
		Y:      found.BBox.Y,
		Width:  found.BBox.Width,
		Height: found.BBox.Height,
	}
	result.Surrounding = blocks.Window(list, result.BlockIndex, c.settings.Window)
	result.SpatiallyClose = blocks.Nearby(list, result.BlockIndex, c.settings.SpatialDistance, c.settings.MaxSpatial)

	sequence := Position(c.buildSequence(list), date, c.settings.SequenceNeighbors)
	result.Sequence = &sequence

	context := make([]string, len(result.Surrounding))
	for i, n := range result.Surrounding {
		context[i] = n.Text
	}
	result.Keywords = c.vocabulary.Match(strings.Join(context, " "))

	c.decide(&result)
	return result
}

// ClassifyAll diagnoses each date in order
func (c *Classifier) ClassifyAll(list []dates.CanonicalDate, source []blocks.Block) []ErrorClassification {
	result := make([]ErrorClassification, 0, len(list))
	for _, date := range list {
		result = append(result, c.Classify(date, source))
	}
	return result
}

func (c *Classifier) decide(r *ErrorClassification) {
	year, month, day, ok := r.Date.Parts()

	switch {
	case !ok:
		r.Label, r.Cause, r.Confidence = LabelInvalidPattern, CauseUnparsable, ConfidenceHigh
		r.Rationale = "token has the shape of a date but its components are not numbers"
	case month < 1 || month > 12:
		r.Label, r.Cause, r.Confidence = LabelRecognitionError, CauseDigitMisread, ConfidenceHigh
		r.Rationale = fmt.Sprintf("month read as %d; OCR likely misread a digit", month)
	case day < 1 || day > 31:
		r.Label, r.Cause, r.Confidence = LabelRecognitionError, CauseDigitMisread, ConfidenceHigh
		r.Rationale = fmt.Sprintf("day read as %d; OCR likely misread a digit", day)
	case year < c.settings.YearFloor || year > c.settings.YearCeiling:
		r.Label, r.Cause, r.Confidence = LabelRecognitionError, CauseDigitMisread, ConfidenceHigh
		r.Rationale = fmt.Sprintf("year read as %d, outside %d-%d; OCR likely misread a digit",
			year, c.settings.YearFloor, c.settings.YearCeiling)
		if r.Sequence != nil && r.Sequence.Found {
			r.Rationale += fmt.Sprintf(". sequence: %s -> %s -> %s",
				formatEntries(lastN(r.Sequence.Before, 2)), r.Date, formatEntries(firstN(r.Sequence.After, 2)))
		}
	case dates.IsImpossible(r.Date):
		r.Label, r.Cause, r.Confidence = LabelInvalidPattern, CauseUnparsable, ConfidenceHigh
		r.Rationale = fmt.Sprintf("%s has the shape of a date but names no calendar day", r.Date)
	case c.isFuture(year, month, day):
		r.Label, r.Confidence = LabelMisclassified, ConfidenceLow
		if len(r.Keywords) > 0 {
			r.Cause = CausePlannedEvent
			r.Rationale = fmt.Sprintf("future date near medical keywords (%s); may be a scheduled or planned event",
				strings.Join(firstN(r.Keywords, 5), ", "))
		} else {
			r.Cause = CauseNonDateNumeric
			r.Rationale = "future date with no medical keywords nearby; likely a numeric run mistaken for a date"
		}
	default:
		r.Label, r.Cause, r.Confidence = LabelMisclassified, CauseReferenceOmission, ConfidenceHigh
		r.Rationale = "past calendar date present in the source but missing from the reference"
	}
}

func (c *Classifier) isFuture(year, month, day int) bool {
	now := c.now()
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()).After(now)
}

func formatEntries(entries []SequenceEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s(p%d)", e.Date, e.Page)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func lastN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

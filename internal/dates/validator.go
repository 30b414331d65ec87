// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package dates

import (
	"time"
)

// Status is the plausibility verdict for a canonical date
type Status string

const (
	// StatusValid is a real calendar date inside the supported range and tolerance
	StatusValid Status = "valid"
	// StatusImpossible violates calendar rules or cannot be parsed
	StatusImpossible Status = "impossible"
	// StatusOutOfRange is a real date whose year is outside the profile bounds
	StatusOutOfRange Status = "out_of_range"
	// StatusFuture is a real, in-range date beyond the future tolerance window
	StatusFuture Status = "future"
)

// Names of the built-in validator profiles
const (
	ProfileStrict            = "strict"
	ProfileInsuranceMaturity = "insurance-maturity"
)

// Profile holds the thresholds used to judge date plausibility
type Profile struct {
	Name        string `yaml:"-" json:"name"`
	Description string `yaml:"description" json:"description,omitempty"`

	// MinYear and MaxYear bound the supported year range (inclusive)
	MinYear int `yaml:"min_year" json:"min_year"`
	MaxYear int `yaml:"max_year" json:"max_year"`

	// FutureToleranceDays is how far past the evaluation time a date may lie
	// before it is flagged as future
	FutureToleranceDays int `yaml:"future_tolerance_days" json:"future_tolerance_days"`
}

// StrictProfile flags anything more than 30 days in the future
func StrictProfile() Profile {
	return Profile{
		Name:                ProfileStrict,
		Description:         "Claim documents: dates later than 30 days from now are suspicious",
		MinYear:             1950,
		MaxYear:             2100,
		FutureToleranceDays: 30,
	}
}

// InsuranceMaturityProfile tolerates policy maturity dates up to 50 years ahead
func InsuranceMaturityProfile() Profile {
	return Profile{
		Name:                ProfileInsuranceMaturity,
		Description:         "Policy documents: maturity dates up to 50 years ahead are expected",
		MinYear:             1950,
		MaxYear:             2100,
		FutureToleranceDays: 365 * 50,
	}
}

// BuiltinProfiles returns the named profiles available without configuration
func BuiltinProfiles() map[string]Profile {
	return map[string]Profile{
		ProfileStrict:            StrictProfile(),
		ProfileInsuranceMaturity: InsuranceMaturityProfile(),
	}
}

// Validator judges canonical dates against a profile.
// It is stateless apart from its configuration and safe for concurrent use.
type Validator struct {
	profile Profile
	now     func() time.Time
}

// NewValidator creates a validator that evaluates future dates against the wall clock
func NewValidator(profile Profile) *Validator {
	return &Validator{profile: profile, now: time.Now}
}

// WithClock returns a copy of the validator that reads the evaluation time from now
func (v *Validator) WithClock(now func() time.Time) *Validator {
	c := *v
	c.now = now
	return &c
}

// Profile returns the validator's profile
func (v *Validator) Profile() Profile {
	return v.profile
}

// Check classifies date. Impossible takes precedence over out of range, which
// takes precedence over future; the predicates never overlap.
func (v *Validator) Check(date CanonicalDate) Status {
	if IsImpossible(date) {
		return StatusImpossible
	}
	if v.IsOutOfRange(date) {
		return StatusOutOfRange
	}
	if v.IsFuture(date) {
		return StatusFuture
	}
	return StatusValid
}

// Accept reports whether date passes validated-mode extraction
func (v *Validator) Accept(date CanonicalDate) bool {
	return v.Check(date) == StatusValid
}

// IsValid reports whether date is a real calendar date inside the supported
// year range. Future dates are still valid.
func (v *Validator) IsValid(date CanonicalDate) bool {
	return !IsImpossible(date) && !v.IsOutOfRange(date)
}

// IsOutOfRange reports whether a real calendar date has a year outside the profile bounds
func (v *Validator) IsOutOfRange(date CanonicalDate) bool {
	year, _, _, ok := date.Parts()
	if !ok || IsImpossible(date) {
		return false
	}
	return year < v.profile.MinYear || year > v.profile.MaxYear
}

// IsFuture reports whether a calendar-valid date lies more than the tolerance
// window beyond the evaluation time. Impossible dates are never future.
func (v *Validator) IsFuture(date CanonicalDate) bool {
	if IsImpossible(date) {
		return false
	}
	year, month, day, _ := date.Parts()
	now := v.now()
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	return t.After(now.AddDate(0, 0, v.profile.FutureToleranceDays))
}

// Time converts a calendar-valid date to midnight UTC
func (d CanonicalDate) Time() (time.Time, bool) {
	if IsImpossible(d) {
		return time.Time{}, false
	}
	year, month, day, _ := d.Parts()
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// IsImpossible reports whether date violates calendar rules: month outside
// 1..12, day outside the month's length (leap years included), or components
// that are not numbers.
func IsImpossible(date CanonicalDate) bool {
	year, month, day, ok := date.Parts()
	if !ok {
		return true
	}
	if month < 1 || month > 12 {
		return true
	}
	return day < 1 || day > DaysIn(year, month)
}

// IsCalendarDate is the negation of IsImpossible
func IsCalendarDate(date CanonicalDate) bool {
	return !IsImpossible(date)
}

// DaysIn returns the number of days in month of year
func DaysIn(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// IsLeapYear applies the Gregorian rule: divisible by 4, not by 100 unless by 400
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

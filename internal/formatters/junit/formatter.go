// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package junit

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"ocr-datecheck/internal/compare"
	"ocr-datecheck/internal/core"
	"ocr-datecheck/internal/formatters"
	"ocr-datecheck/internal/formatters/shared"
)

// JUnit XML structures based on the standard JUnit XML schema
type TestSuites struct {
	XMLName    xml.Name    `xml:"testsuites"`
	Name       string      `xml:"name,attr"`
	Tests      int         `xml:"tests,attr"`
	Failures   int         `xml:"failures,attr"`
	Errors     int         `xml:"errors,attr"`
	Skipped    int         `xml:"skipped,attr"`
	Time       string      `xml:"time,attr"`
	TestSuites []TestSuite `xml:"testsuite"`
}

type TestSuite struct {
	XMLName   xml.Name   `xml:"testsuite"`
	Name      string     `xml:"name,attr"`
	Tests     int        `xml:"tests,attr"`
	Failures  int        `xml:"failures,attr"`
	Errors    int        `xml:"errors,attr"`
	Skipped   int        `xml:"skipped,attr"`
	Time      string     `xml:"time,attr"`
	TestCases []TestCase `xml:"testcase"`
}

type TestCase struct {
	XMLName   xml.Name `xml:"testcase"`
	Name      string   `xml:"name,attr"`
	ClassName string   `xml:"classname,attr"`
	Time      string   `xml:"time,attr"`
	Failure   *Failure `xml:"failure,omitempty"`
	Skipped   *Skipped `xml:"skipped,omitempty"`
	SystemOut string   `xml:"system-out,omitempty"`
}

type Failure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

type Skipped struct {
	Message string `xml:"message,attr"`
}

// Formatter implements JUnit XML output formatting. A case graded low is a
// failure; a case that could not be loaded is skipped.
type Formatter struct{}

// NewFormatter creates a new JUnit XML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "junit"
}

func (f *Formatter) Description() string {
	return "JUnit XML format for CI/CD integration and test reporting"
}

func (f *Formatter) FileExtension() string {
	return ".xml"
}

func (f *Formatter) Format(report *core.BatchReport, options formatters.FormatterOptions) (string, error) {
	suite := TestSuite{
		Name:      "date-validation",
		Time:      seconds(report.Duration),
		TestCases: []TestCase{},
	}

	for _, row := range shared.Rows(report) {
		testCase := f.createTestCase(row, options)
		suite.TestCases = append(suite.TestCases, testCase)
		suite.Tests++
		if testCase.Failure != nil {
			suite.Failures++
		}
		if testCase.Skipped != nil {
			suite.Skipped++
		}
	}

	testSuites := TestSuites{
		Name:       "datecheck",
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Skipped:    suite.Skipped,
		Time:       suite.Time,
		TestSuites: []TestSuite{suite},
	}

	xmlData, err := xml.MarshalIndent(testSuites, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JUnit XML: %w", err)
	}

	return xml.Header + string(xmlData), nil
}

// createTestCase creates a JUnit test case for one validation case
func (f *Formatter) createTestCase(row shared.Row, options formatters.FormatterOptions) TestCase {
	className := row.Type
	if className == "" {
		className = "case"
	}

	testCase := TestCase{
		Name:      row.Name,
		ClassName: className,
		Time:      seconds(row.Duration),
	}

	if row.Skipped() {
		testCase.Skipped = &Skipped{Message: row.SkipReason}
		return testCase
	}

	r := row.Result
	if r.Grade == compare.GradeLow {
		testCase.Failure = &Failure{
			Message: fmt.Sprintf("accuracy %.1f%% below %.0f%%", r.Accuracy, compare.MediumThreshold),
			Type:    "low-grade",
			Content: f.describe(r, true),
		}
		return testCase
	}

	if options.Verbose {
		testCase.SystemOut = f.describe(r, false)
	}
	return testCase
}

// describe lists the discrepancies and diagnoses of a result
func (f *Formatter) describe(r *core.ValidationResult, diagnoses bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "grade %s: %d of %d reference dates matched, %d extra", r.Grade, r.MatchedCount, r.ReferenceCount, r.ExtraCount)
	if len(r.MissingDates) > 0 {
		fmt.Fprintf(&b, "\nMissing: %s", shared.JoinDates(r.MissingDates, ", "))
	}
	if len(r.ExtraDates) > 0 {
		fmt.Fprintf(&b, "\nExtra: %s", shared.JoinDates(r.ExtraDates, ", "))
	}
	if len(r.ImpossibleDates) > 0 {
		fmt.Fprintf(&b, "\nImpossible: %s", shared.JoinDates(r.ImpossibleDates, ", "))
	}
	if len(r.FutureDates) > 0 {
		fmt.Fprintf(&b, "\nFuture: %s", shared.JoinDates(r.FutureDates, ", "))
	}
	if diagnoses {
		for _, d := range r.Diagnoses {
			fmt.Fprintf(&b, "\n%s: %s (%s, %s confidence) %s", d.Date, d.Label, d.Cause, d.Confidence, d.Rationale)
		}
	}
	return b.String()
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

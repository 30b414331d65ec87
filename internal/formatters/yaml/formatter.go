// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"

	"ocr-datecheck/internal/core"
	"ocr-datecheck/internal/formatters"
	"ocr-datecheck/internal/formatters/shared"

	"gopkg.in/yaml.v3"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML format output, same structure as JSON"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

func (f *Formatter) Format(report *core.BatchReport, options formatters.FormatterOptions) (string, error) {
	// same document as the JSON formatter
	document := shared.ConvertReport(report, options)

	yamlData, err := yaml.Marshal(document)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return string(yamlData), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"

	"ocr-datecheck/internal/core"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose bool // Whether to display per-case samples and full diagnoses
	NoColor bool // Whether to disable colored output
	Compact bool // Whether to emit compact output where the format allows it
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders a batch report in the formatter's specific output format
	Format(report *core.BatchReport, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".txt", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatInfo provides metadata about a formatter
type FormatInfo struct {
	Name        string
	Description string
	Extension   string
	MimeType    string
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders report with the named formatter from the default registry
func Export(format string, report *core.BatchReport, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		availableFormats := List()
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(availableFormats, ", "))
	}
	if report == nil {
		return "", fmt.Errorf("no report to format")
	}
	return formatter.Format(report, options)
}

// GetFormatInfo returns metadata about a specific formatter
func GetFormatInfo(name string) FormatInfo {
	formatter, exists := Get(name)
	if !exists {
		return FormatInfo{}
	}

	info := FormatInfo{
		Name:        formatter.Name(),
		Description: formatter.Description(),
		Extension:   formatter.FileExtension(),
	}

	switch name {
	case "json":
		info.MimeType = "application/json"
	case "csv":
		info.MimeType = "text/csv"
	case "yaml":
		info.MimeType = "application/x-yaml"
	case "junit":
		info.MimeType = "application/xml"
	case "text":
		info.MimeType = "text/plain"
	default:
		info.MimeType = "application/octet-stream"
	}

	return info
}

// GetSupportedFormats returns information about all available formatters
func GetSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, name := range List() {
		formats = append(formats, GetFormatInfo(name))
	}
	return formats
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package casefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrMissingSource is returned when a baseline or OCR file does not exist
	ErrMissingSource = errors.New("source file missing")
	// ErrUnsupportedFormat is returned for file extensions no loader handles
	ErrUnsupportedFormat = errors.New("unsupported source format")
)

// Case describes one document to validate, as listed in a manifest
type Case struct {
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	BaselineFile string `json:"baseline_file" yaml:"baseline_file"`
	OCRFile      string `json:"ocr_file" yaml:"ocr_file"`
}

// LoadManifest reads a JSON array of cases. Relative file paths are resolved
// against the manifest's directory.
func LoadManifest(path string) ([]Case, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("manifest %s: %w", path, ErrMissingSource)
		}
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("error parsing manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range cases {
		c := &cases[i]
		if strings.TrimSpace(c.Name) == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		c.BaselineFile = resolve(dir, c.BaselineFile)
		c.OCRFile = resolve(dir, c.OCRFile)
	}
	return cases, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func checkExists(path string) error {
	if path == "" {
		return fmt.Errorf("no path given: %w", ErrMissingSource)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrMissingSource)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, ErrUnsupportedFormat)
	}
	return nil
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package casefile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LoadBaseline reads the reference report for a case as flat text. Text and
// markdown files are read directly, PDF reports are converted page by page and
// JSON files are decoded like OCR output.
func LoadBaseline(path string) (string, error) {
	if err := checkExists(path); err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", "":
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return "", fmt.Errorf("error reading %s: %w", path, err)
		}
		return string(data), nil
	case ".pdf":
		return extractPDFText(path)
	case ".json", ".csv":
		src, err := LoadOCR(path)
		if err != nil {
			return "", err
		}
		return src.Text, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// unreadable pages are skipped
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

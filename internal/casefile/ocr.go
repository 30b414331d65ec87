// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package casefile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ocr-datecheck/internal/blocks"
)

// Source is materialized document content: flat text plus, when the OCR
// engine reported them, positioned blocks
type Source struct {
	Text   string
	Blocks []blocks.Block
}

type ocrBlock struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence"`
	BBox       struct {
		Page   int     `json:"page"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"bbox"`
}

type ocrDocument struct {
	Blocks []ocrBlock `json:"blocks"`
	Text   string     `json:"text"`
	Pages  []struct {
		Text string `json:"text"`
	} `json:"pages"`
}

// LoadOCR reads an OCR result file. JSON files may carry a block array, a
// top-level text field or a page array; CSV files need a text column. Plain
// text files are taken as-is.
func LoadOCR(path string) (Source, error) {
	if err := checkExists(path); err != nil {
		return Source{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadOCRJSON(path)
	case ".csv":
		return loadOCRCSV(path)
	case ".txt", ".md":
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Source{}, fmt.Errorf("error reading %s: %w", path, err)
		}
		return Source{Text: string(data)}, nil
	default:
		return Source{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

func loadOCRJSON(path string) (Source, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Source{}, fmt.Errorf("error reading %s: %w", path, err)
	}
	return ParseOCRJSON(data)
}

// ParseOCRJSON decodes an OCR JSON document
func ParseOCRJSON(data []byte) (Source, error) {
	var doc ocrDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Source{}, fmt.Errorf("error parsing OCR JSON: %w", err)
	}

	if len(doc.Blocks) > 0 {
		list := make([]blocks.Block, 0, len(doc.Blocks))
		for _, b := range doc.Blocks {
			list = append(list, blocks.Block{
				Page:       b.BBox.Page,
				Text:       b.Text,
				Confidence: b.Confidence,
				BBox: blocks.BoundingBox{
					X:      b.BBox.X,
					Y:      b.BBox.Y,
					Width:  b.BBox.Width,
					Height: b.BBox.Height,
				},
			})
		}
		return Source{Text: blocks.JoinText(list), Blocks: list}, nil
	}

	if doc.Text != "" {
		return Source{Text: doc.Text}, nil
	}

	pages := make([]string, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		pages = append(pages, p.Text)
	}
	return Source{Text: strings.Join(pages, "\n\n"+blocks.PageSeparator+"\n\n")}, nil
}

func loadOCRCSV(path string) (Source, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Source{}, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()
	return ParseOCRCSV(f)
}

// ParseOCRCSV reads blocks from CSV with a header row. The text column is
// required; page, x, y, width, height and confidence are optional. Cells that
// do not parse as numbers are left at zero.
func ParseOCRCSV(r io.Reader) (Source, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Source{}, fmt.Errorf("error reading CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	if _, ok := columns["text"]; !ok {
		return Source{}, fmt.Errorf("CSV has no text column: %w", ErrUnsupportedFormat)
	}

	cell := func(record []string, name string) (string, bool) {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[i]), true
	}
	number := func(record []string, name string) float64 {
		s, ok := cell(record, name)
		if !ok {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}

	var list []blocks.Block
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a malformed row is skipped
			if _, ok := err.(*csv.ParseError); ok {
				continue
			}
			return Source{}, fmt.Errorf("error reading CSV: %w", err)
		}

		text, _ := cell(record, "text")
		b := blocks.Block{
			Page: int(number(record, "page")),
			Text: text,
			BBox: blocks.BoundingBox{
				X:      number(record, "x"),
				Y:      number(record, "y"),
				Width:  number(record, "width"),
				Height: number(record, "height"),
			},
		}
		if s, ok := cell(record, "confidence"); ok && s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				b.Confidence = &v
			}
		}
		list = append(list, b)
	}

	return Source{Text: blocks.JoinText(list), Blocks: list}, nil
}

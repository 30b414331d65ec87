// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ocr-datecheck/internal/casefile"
	"ocr-datecheck/internal/observability"
	"ocr-datecheck/internal/parallel"
)

var _ observability.Observable = (*Engine)(nil)

// BatchConfig holds configuration for a batch run
type BatchConfig struct {
	Workers  int
	Observer *observability.StandardObserver

	// Progress, when non-nil, is called after each case finishes
	Progress parallel.ProgressCallback
}

// LoadCase materializes the reference and candidate sources of a case
func LoadCase(c casefile.Case) (CaseInput, error) {
	reference, err := casefile.LoadBaseline(c.BaselineFile)
	if err != nil {
		return CaseInput{}, fmt.Errorf("baseline: %w", err)
	}
	candidate, err := casefile.LoadOCR(c.OCRFile)
	if err != nil {
		return CaseInput{}, fmt.Errorf("ocr: %w", err)
	}
	return CaseInput{
		Name:      c.Name,
		Type:      c.Type,
		Reference: reference,
		Candidate: candidate,
	}, nil
}

// RunBatch validates every case in parallel. A case whose files cannot be
// loaded is recorded as skipped; it never aborts the batch.
func (e *Engine) RunBatch(ctx context.Context, cases []casefile.Case, cfg BatchConfig) *BatchReport {
	start := time.Now()
	observer := cfg.Observer

	var finishTiming func(bool, map[string]interface{})
	if observer != nil {
		finishTiming = observer.StartTiming(e.GetComponentName(), "run_batch", "manifest")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = parallel.DefaultWorkers()
	}

	process := func(_ context.Context, c casefile.Case) (CaseOutcome, error) {
		return e.runCase(c, observer), nil
	}
	ids := func(_ int, c casefile.Case) string { return c.Name }

	results, stats := parallel.ProcessAll(ctx, workers, cases, ids, process, observer, cfg.Progress)

	outcomes := make([]CaseOutcome, len(results))
	for i, r := range results {
		if r.Error != nil {
			outcomes[i] = CaseOutcome{Case: cases[i], Skipped: true, SkipReason: r.Error.Error(), Duration: r.Duration}
			continue
		}
		outcomes[i] = r.Value
	}

	report := &BatchReport{
		RunID:     uuid.NewString(),
		StartedAt: start,
		Duration:  time.Since(start),
		Profile:   e.validator.Profile().Name,
		Validated: e.extractor.Validated(),
		Outcomes:  outcomes,
		Summary:   Summarize(outcomes),
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"run_id":        report.RunID,
			"total_cases":   report.Summary.TotalCases,
			"skipped_cases": report.Summary.SkippedCases,
			"worker_count":  stats.WorkerCount,
		})
	}
	return report
}

func (e *Engine) runCase(c casefile.Case, observer *observability.StandardObserver) CaseOutcome {
	start := time.Now()

	var finishStep func(bool, string)
	if observer != nil && observer.DebugObserver != nil {
		finishStep = observer.DebugObserver.StartStep(e.GetComponentName(), "validate_case", c.Name)
	}

	in, err := LoadCase(c)
	if err != nil {
		if observer != nil {
			logger := observer.Logger()
			logger.Warn().Err(err).Str("case", c.Name).Msg("skipping case")
		}
		if finishStep != nil {
			finishStep(false, err.Error())
		}
		return CaseOutcome{Case: c, Skipped: true, SkipReason: err.Error(), Duration: time.Since(start)}
	}

	result := e.ValidateCase(in)
	if finishStep != nil {
		finishStep(true, fmt.Sprintf("grade=%s accuracy=%.1f", result.Grade, result.Accuracy))
	}
	return CaseOutcome{Case: c, Result: result, Duration: time.Since(start)}
}

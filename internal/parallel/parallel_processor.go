// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"ocr-datecheck/internal/observability"
)

// MaxDefaultWorkers caps DefaultWorkers
const MaxDefaultWorkers = 8

// ProcessingStats tracks parallel processing statistics
type ProcessingStats struct {
	TotalJobs     int           `json:"total_jobs"`
	FailedJobs    int           `json:"failed_jobs"`
	TotalDuration time.Duration `json:"total_duration_ms"`
	WorkerCount   int           `json:"worker_count"`
	AvgJobTime    time.Duration `json:"avg_job_time_ms"`
}

// ProgressCallback is called when a job is completed
type ProgressCallback func(completed, total int, jobID string)

// DefaultWorkers returns the CPU count capped at MaxDefaultWorkers
func DefaultWorkers() int {
	workers := runtime.NumCPU()
	if workers > MaxDefaultWorkers {
		workers = MaxDefaultWorkers
	}
	return workers
}

// ProcessAll runs process over every payload and returns the results in
// payload order. Failed jobs keep their error in the result; they never stop
// the remaining jobs.
func ProcessAll[T, R any](ctx context.Context, workers int, payloads []T, ids func(int, T) string, process ProcessFunc[T, R], observer *observability.StandardObserver, progress ProgressCallback) ([]Result[R], *ProcessingStats) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if observer != nil {
		finishTiming = observer.StartTiming("parallel_processor", "process_all", "batch")
	}

	if workers > len(payloads) {
		workers = len(payloads)
	}
	pool := NewWorkerPool(ctx, workers, process, observer)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, payload := range payloads {
			id := fmt.Sprintf("job_%d", i)
			if ids != nil {
				id = ids(i, payload)
			}
			if !pool.Submit(&Job[T]{JobID: id, Index: i, Payload: payload}) {
				return
			}
		}
	}()

	results := make([]Result[R], len(payloads))
	received := make([]bool, len(payloads))
	failed := 0
	totalDuration := time.Duration(0)

	completed := 0
	for result := range collect(pool) {
		results[result.Index] = *result
		received[result.Index] = true
		if result.Error != nil {
			failed++
		}
		totalDuration += result.Duration
		completed++
		if progress != nil {
			progress(completed, len(payloads), result.JobID)
		}
	}

	// jobs never submitted because the context ended
	for i := range results {
		if !received[i] {
			results[i].Index = i
			results[i].Error = context.Cause(ctx)
			if results[i].Error == nil {
				results[i].Error = context.Canceled
			}
			failed++
		}
	}

	stats := &ProcessingStats{
		TotalJobs:     len(payloads),
		FailedJobs:    failed,
		TotalDuration: time.Since(start),
		WorkerCount:   pool.Workers(),
		AvgJobTime:    totalDuration / time.Duration(max(completed, 1)),
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"total_jobs":   stats.TotalJobs,
			"failed_jobs":  stats.FailedJobs,
			"worker_count": stats.WorkerCount,
		})
	}

	return results, stats
}

// collect forwards pool results until every worker has exited
func collect[T, R any](pool *WorkerPool[T, R]) <-chan *Result[R] {
	go pool.Stop()
	return pool.Results()
}

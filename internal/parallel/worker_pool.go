// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ocr-datecheck/internal/observability"
)

// ProcessFunc handles one job payload
type ProcessFunc[T, R any] func(ctx context.Context, payload T) (R, error)

// WorkerPool runs independent jobs on a fixed number of goroutines
type WorkerPool[T, R any] struct {
	workers  int
	jobs     chan *Job[T]
	results  chan *Result[R]
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	process  ProcessFunc[T, R]
	observer *observability.StandardObserver
}

// Job represents one unit of work
type Job[T any] struct {
	JobID   string
	Index   int
	Payload T
}

// Result represents processing results
type Result[R any] struct {
	JobID    string
	Index    int
	Value    R
	Error    error
	Duration time.Duration
}

// NewWorkerPool creates a new worker pool. A non-positive worker count is raised to one.
func NewWorkerPool[T, R any](ctx context.Context, workers int, process ProcessFunc[T, R], observer *observability.StandardObserver) *WorkerPool[T, R] {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool[T, R]{
		workers:  workers,
		jobs:     make(chan *Job[T], workers*2),
		results:  make(chan *Result[R], workers*2),
		ctx:      ctx,
		cancel:   cancel,
		process:  process,
		observer: observer,
	}
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool[T, R]) Workers() int {
	return wp.workers
}

// Start initializes worker goroutines
func (wp *WorkerPool[T, R]) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop waits for the workers to drain and closes the results channel.
// Close must have been called first.
func (wp *WorkerPool[T, R]) Stop() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Close signals that no more jobs will be submitted
func (wp *WorkerPool[T, R]) Close() {
	close(wp.jobs)
}

// Submit adds a job to the queue. It reports false when the pool was cancelled.
func (wp *WorkerPool[T, R]) Submit(job *Job[T]) bool {
	select {
	case wp.jobs <- job:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// Results returns the results channel
func (wp *WorkerPool[T, R]) Results() <-chan *Result[R] {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool[T, R]) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob executes a single job. A panic in the process function fails
// only that job.
func (wp *WorkerPool[T, R]) processJob(job *Job[T], workerID int) (result *Result[R]) {
	start := time.Now()

	var finishTiming func(bool, map[string]interface{})
	if wp.observer != nil {
		finishTiming = wp.observer.StartTiming("worker_pool", "process_job", job.JobID)
	}

	result = &Result[R]{JobID: job.JobID, Index: job.Index}
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("job %s panicked: %v", job.JobID, r)
		}
		result.Duration = time.Since(start)
		if finishTiming != nil {
			finishTiming(result.Error == nil, map[string]interface{}{
				"worker_id": workerID,
				"had_error": result.Error != nil,
			})
		}
	}()

	if err := wp.ctx.Err(); err != nil {
		result.Error = err
		return result
	}
	result.Value, result.Error = wp.process(wp.ctx, job.Payload)
	return result
}

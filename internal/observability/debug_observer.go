// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DebugObserver provides detailed step-by-step debugging
type DebugObserver struct {
	*StandardObserver
	depth atomic.Int32
}

// NewDebugObserver creates a debug observer with step-by-step logging
func NewDebugObserver(logger zerolog.Logger) *DebugObserver {
	d := &DebugObserver{
		StandardObserver: NewLoggerObserver(ObservabilityDebug, logger),
	}
	d.StandardObserver.DebugObserver = d
	return d
}

// StartStep begins a processing step. The returned function records its outcome.
func (d *DebugObserver) StartStep(component, step, subject string) func(success bool, details string) {
	start := time.Now()
	depth := d.depth.Add(1)

	d.logger.Debug().
		Str("component", component).
		Str("step", step).
		Str("subject", subject).
		Int32("depth", depth).
		Msg("step started")

	return func(success bool, details string) {
		d.depth.Add(-1)
		event := d.logger.Debug()
		if !success {
			event = d.logger.Warn()
		}
		event.
			Str("component", component).
			Str("step", step).
			Str("subject", subject).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Bool("success", success).
			Str("details", details).
			Msg("step finished")
	}
}

// LogDetail logs a detail within the current step
func (d *DebugObserver) LogDetail(component, detail string) {
	d.logger.Debug().Str("component", component).Msg(detail)
}

// LogMetric logs a metric value
func (d *DebugObserver) LogMetric(component, metric string, value interface{}) {
	d.logger.Debug().Str("component", component).Str("metric", metric).Interface("value", value).Msg("metric")
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// StandardObserver implements observability for all components
type StandardObserver struct {
	level         ObservabilityLevel
	logger        zerolog.Logger
	DebugObserver *DebugObserver // Reference to debug observer when in debug mode
}

var _ Timer = (*StandardObserver)(nil)

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates an observer writing JSON lines to writer
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	return NewLoggerObserver(level, zerolog.New(writer).With().Timestamp().Logger())
}

// NewLoggerObserver creates an observer on an existing logger
func NewLoggerObserver(level ObservabilityLevel, logger zerolog.Logger) *StandardObserver {
	return &StandardObserver{
		level:  level,
		logger: logger,
	}
}

// Logger returns the underlying logger
func (o *StandardObserver) Logger() zerolog.Logger {
	return o.logger
}

// Level returns the observer level
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, subject string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		o.LogOperation(StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			Subject:    subject,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation logs operation data. Metrics level records failures only;
// debug level records every operation.
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o == nil || o.level == ObservabilityOff {
		return
	}
	if o.level == ObservabilityMetrics && data.Success {
		return
	}

	event := o.logger.Debug()
	if !data.Success {
		event = o.logger.Warn()
	}
	event = event.
		Str("component", data.Component).
		Str("operation", data.Operation).
		Int64("duration_ms", data.DurationMs).
		Bool("success", data.Success)
	if data.Subject != "" {
		event = event.Str("subject", data.Subject)
	}
	if data.Error != "" {
		event = event.Str("error", data.Error)
	}
	if len(data.Metadata) > 0 {
		event = event.Fields(data.Metadata)
	}
	event.Msg("operation finished")
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	Subject    string                 `json:"subject,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

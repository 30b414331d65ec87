// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var events []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var event map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &event))
		events = append(events, event)
	}
	return events
}

func TestStartTiming_DebugLevelRecordsEverything(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)

	done := o.StartTiming("engine", "validate_case", "case-1")
	done(true, map[string]interface{}{"matched": 3})

	events := decodeLines(t, &buf)
	require.Len(t, events, 1)
	assert.Equal(t, "engine", events[0]["component"])
	assert.Equal(t, "validate_case", events[0]["operation"])
	assert.Equal(t, "case-1", events[0]["subject"])
	assert.Equal(t, true, events[0]["success"])
	assert.Equal(t, float64(3), events[0]["matched"])
	assert.Equal(t, "debug", events[0]["level"])
}

func TestStartTiming_MetricsLevelRecordsFailuresOnly(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityMetrics, &buf)

	o.StartTiming("engine", "ok", "")(true, nil)
	assert.Empty(t, buf.String())

	o.StartTiming("engine", "load", "case-2")(false, nil)
	events := decodeLines(t, &buf)
	require.Len(t, events, 1)
	assert.Equal(t, "warn", events[0]["level"])
}

func TestObserverOff(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityOff, &buf)
	o.StartTiming("engine", "validate_case", "x")(false, nil)
	assert.Empty(t, buf.String())

	var nilObserver *StandardObserver
	assert.NotPanics(t, func() { nilObserver.LogOperation(StandardObservabilityData{}) })
}

func TestDebugObserver_Steps(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugObserver(zerolog.New(&buf))
	require.Same(t, d, d.StandardObserver.DebugObserver)

	finish := d.StartStep("engine", "diagnose", "case-3")
	d.LogDetail("engine", "2 flagged dates")
	d.LogMetric("engine", "matched", 4)
	finish(true, "done")

	events := decodeLines(t, &buf)
	require.Len(t, events, 4)
	assert.Equal(t, "step started", events[0]["message"])
	assert.Equal(t, float64(1), events[0]["depth"])
	assert.Equal(t, "2 flagged dates", events[1]["message"])
	assert.Equal(t, "matched", events[2]["metric"])
	assert.Equal(t, "step finished", events[3]["message"])
}

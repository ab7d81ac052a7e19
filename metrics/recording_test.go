// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsdl-go/grs/metrics"
)

func TestRecorder_FinishRequest(t *testing.T) {
	t.Parallel()

	recorder := metrics.TestingRecorder(t, "grs-test")

	finish := recorder.StartRequest(context.Background())
	finish(metrics.DispatchObservation{
		Method:        "GET",
		Path:          "sensors/temp",
		Status:        "2.05",
		Duration:      5 * time.Millisecond,
		RequestBytes:  0,
		ResponseBytes: 12,
	})
	// No observable exported output with StdoutProvider+ServerDisabled beyond
	// not panicking; instrument creation and recording must not error.
}

func TestRecorder_CustomMetrics(t *testing.T) {
	t.Parallel()

	recorder := metrics.TestingRecorder(t, "grs-test")
	ctx := context.Background()

	require.NoError(t, recorder.IncrementCounter(ctx, "resources_created"))
	require.NoError(t, recorder.RecordHistogram(ctx, "clone_bytes", 128))
	require.NoError(t, recorder.SetGauge(ctx, "resource_count", 7))
	require.NoError(t, recorder.RecordResourceCount(ctx, 7))
}

func TestRecorder_CustomMetricNameValidation(t *testing.T) {
	t.Parallel()

	recorder := metrics.TestingRecorder(t, "grs-test")
	ctx := context.Background()

	err := recorder.IncrementCounter(ctx, "")
	assert.Error(t, err)

	err = recorder.IncrementCounter(ctx, "router_requests")
	assert.Error(t, err, "reserved prefix should be rejected")

	err = recorder.IncrementCounter(ctx, "valid_metric.name_v2")
	assert.NoError(t, err)
}

// TestRecorder_FinishRequest_ErrorObservation records an observation with Err
// set; like TestRecorder_FinishRequest, it checks only that recording does
// not panic.
func TestRecorder_FinishRequest_ErrorObservation(t *testing.T) {
	t.Parallel()

	recorder := metrics.TestingRecorder(t, "grs-test")

	finish := recorder.StartRequest(context.Background())
	finish(metrics.DispatchObservation{
		Method: "PUT",
		Path:   "missing/path",
		Status: "4.04",
		Err:    true,
	})
}

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

package metrics

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metricNamePattern restricts custom metric names to a safe, exporter-portable
// character set. Prometheus and OTLP both accept this subset.
var metricNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.]{0,127}$`)

// reservedMetricPrefixes may not be used for custom metric names; they are
// reserved for the built-in dispatch instruments.
var reservedMetricPrefixes = []string{"__", "coap_dispatch_", "router_", "http_"}

func validateMetricName(name string) error {
	if name == "" {
		return fmt.Errorf("metric name cannot be empty")
	}
	if len(name) > 128 {
		return fmt.Errorf("metric name exceeds maximum length of 128: %q", name)
	}
	if !metricNamePattern.MatchString(name) {
		return fmt.Errorf("metric name %q does not match required pattern %s", name, metricNamePattern.String())
	}
	for _, prefix := range reservedMetricPrefixes {
		if strings.HasPrefix(name, prefix) {
			return fmt.Errorf("metric name %q uses reserved prefix %q", name, prefix)
		}
	}
	return nil
}

// initializeDispatchInstruments creates the built-in instruments recorded on
// every Dispatch call. Called once, after the meter is obtained from the
// configured provider.
func (r *Recorder) initializeDispatchInstruments() error {
	var err error

	r.requestDuration, err = r.meter.Float64Histogram(
		"coap_dispatch_duration_seconds",
		metric.WithDescription("Duration of CoAP request dispatch in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("creating dispatch duration histogram: %w", err)
	}

	r.requestCount, err = r.meter.Int64Counter(
		"coap_dispatch_requests_total",
		metric.WithDescription("Total number of CoAP requests dispatched"),
	)
	if err != nil {
		return fmt.Errorf("creating dispatch count counter: %w", err)
	}

	r.activeRequests, err = r.meter.Int64UpDownCounter(
		"coap_dispatch_active_requests",
		metric.WithDescription("Number of CoAP requests currently being dispatched"),
	)
	if err != nil {
		return fmt.Errorf("creating active requests gauge: %w", err)
	}

	r.requestSize, err = r.meter.Int64Histogram(
		"coap_dispatch_request_payload_bytes",
		metric.WithDescription("Size of incoming CoAP request payloads in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(r.sizeBuckets...),
	)
	if err != nil {
		return fmt.Errorf("creating request size histogram: %w", err)
	}

	r.responseSize, err = r.meter.Int64Histogram(
		"coap_dispatch_response_payload_bytes",
		metric.WithDescription("Size of outgoing CoAP response payloads in bytes"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(r.sizeBuckets...),
	)
	if err != nil {
		return fmt.Errorf("creating response size histogram: %w", err)
	}

	r.errorCount, err = r.meter.Int64Counter(
		"coap_dispatch_errors_total",
		metric.WithDescription("Total number of CoAP requests that resulted in an error status"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	r.customMetricFailures, err = r.meter.Int64Counter(
		"coap_dispatch_custom_metric_failures_total",
		metric.WithDescription("Total number of custom metric recording failures"),
	)
	if err != nil {
		return fmt.Errorf("creating custom metric failures counter: %w", err)
	}

	return nil
}

// DispatchObservation carries the dimensions recorded for a single completed
// Dispatch call.
type DispatchObservation struct {
	Method         string        // CoAP method code, e.g. "GET", "POST"
	Path           string        // normalized request path
	Status         string        // CoAP response status, e.g. "2.05", "4.04"
	Duration       time.Duration // wall-clock time spent in Dispatch
	RequestBytes   int           // size of the request payload, 0 if none
	ResponseBytes  int           // size of the response payload, 0 if none
	Err            bool          // true if the dispatch resulted in an error status
}

// StartRequest records that a dispatch has begun and returns a function that
// must be called with the observation once the dispatch completes.
//
// Example:
//
//	finish := recorder.StartRequest(ctx)
//	err := ctx.Dispatch(req, addr)
//	finish(metrics.DispatchObservation{Method: "GET", Path: path, Status: status})
func (r *Recorder) StartRequest(ctx context.Context) func(DispatchObservation) {
	if !r.enabled || r.requestCount == nil {
		return func(DispatchObservation) {}
	}

	r.activeRequests.Add(ctx, 1, metric.WithAttributes(r.serviceNameAttr, r.serviceVersionAttr))

	return func(obs DispatchObservation) {
		r.FinishRequest(ctx, obs)
	}
}

// FinishRequest records a completed dispatch's duration, counts, and payload
// sizes. It is safe to call directly instead of via StartRequest's returned
// closure when the caller already tracks in-flight state itself.
func (r *Recorder) FinishRequest(ctx context.Context, obs DispatchObservation) {
	if !r.enabled || r.requestCount == nil {
		return
	}

	attrs := metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("method", obs.Method),
		attribute.String("path", obs.Path),
		attribute.String("status", obs.Status),
	)

	r.activeRequests.Add(ctx, -1, metric.WithAttributes(r.serviceNameAttr, r.serviceVersionAttr))
	r.requestCount.Add(ctx, 1, attrs)
	r.requestDuration.Record(ctx, obs.Duration.Seconds(), attrs)

	if obs.RequestBytes > 0 {
		r.requestSize.Record(ctx, int64(obs.RequestBytes), attrs)
	}
	if obs.ResponseBytes > 0 {
		r.responseSize.Record(ctx, int64(obs.ResponseBytes), attrs)
	}
	if obs.Err {
		r.errorCount.Add(ctx, 1, attrs)
	}
}

// RecordResourceCount sets a gauge-like observation for the number of
// resources currently held by a store. Since OpenTelemetry counters are
// monotonic, this is recorded as a custom float gauge under the hood.
func (r *Recorder) RecordResourceCount(ctx context.Context, count int) error {
	return r.SetGauge(ctx, "resource_count", float64(count))
}

// IncrementCounter increments a custom counter by 1, creating it on first use.
// The name must satisfy validateMetricName; failing that returns an error and
// increments the internal custom-metric-failure counter.
func (r *Recorder) IncrementCounter(ctx context.Context, name string, attrs ...attribute.KeyValue) error {
	if !r.enabled {
		return nil
	}
	if err := validateMetricName(name); err != nil {
		r.recordCustomMetricFailure(ctx)
		return err
	}

	counter, err := r.getOrCreateCounter(name)
	if err != nil {
		r.recordCustomMetricFailure(ctx)
		return err
	}

	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
	return nil
}

// RecordHistogram records a value in a custom histogram, creating it on first use.
func (r *Recorder) RecordHistogram(ctx context.Context, name string, value float64, attrs ...attribute.KeyValue) error {
	if !r.enabled {
		return nil
	}
	if err := validateMetricName(name); err != nil {
		r.recordCustomMetricFailure(ctx)
		return err
	}

	hist, err := r.getOrCreateHistogram(name)
	if err != nil {
		r.recordCustomMetricFailure(ctx)
		return err
	}

	hist.Record(ctx, value, metric.WithAttributes(attrs...))
	return nil
}

// SetGauge sets a custom gauge's current value, creating it on first use.
func (r *Recorder) SetGauge(ctx context.Context, name string, value float64, attrs ...attribute.KeyValue) error {
	if !r.enabled {
		return nil
	}
	if err := validateMetricName(name); err != nil {
		r.recordCustomMetricFailure(ctx)
		return err
	}

	gauge, err := r.getOrCreateGauge(name)
	if err != nil {
		r.recordCustomMetricFailure(ctx)
		return err
	}

	gauge.Record(ctx, value, metric.WithAttributes(attrs...))
	return nil
}

func (r *Recorder) recordCustomMetricFailure(ctx context.Context) {
	if r.customMetricFailures != nil {
		r.customMetricFailures.Add(ctx, 1)
	}
}

func (r *Recorder) getOrCreateCounter(name string) (metric.Int64Counter, error) {
	r.customMu.RLock()
	if c, ok := r.customCounters[name]; ok {
		r.customMu.RUnlock()
		return c, nil
	}
	r.customMu.RUnlock()

	r.customMu.Lock()
	defer r.customMu.Unlock()

	if c, ok := r.customCounters[name]; ok {
		return c, nil
	}
	if r.customMetricCount >= r.maxCustomMetrics {
		return nil, fmt.Errorf("maximum custom metric count (%d) reached", r.maxCustomMetrics)
	}

	c, err := r.meter.Int64Counter(name)
	if err != nil {
		return nil, fmt.Errorf("creating counter %q: %w", name, err)
	}
	r.customCounters[name] = c
	r.customMetricCount++
	return c, nil
}

func (r *Recorder) getOrCreateHistogram(name string) (metric.Float64Histogram, error) {
	r.customMu.RLock()
	if h, ok := r.customHistograms[name]; ok {
		r.customMu.RUnlock()
		return h, nil
	}
	r.customMu.RUnlock()

	r.customMu.Lock()
	defer r.customMu.Unlock()

	if h, ok := r.customHistograms[name]; ok {
		return h, nil
	}
	if r.customMetricCount >= r.maxCustomMetrics {
		return nil, fmt.Errorf("maximum custom metric count (%d) reached", r.maxCustomMetrics)
	}

	h, err := r.meter.Float64Histogram(name)
	if err != nil {
		return nil, fmt.Errorf("creating histogram %q: %w", name, err)
	}
	r.customHistograms[name] = h
	r.customMetricCount++
	return h, nil
}

func (r *Recorder) getOrCreateGauge(name string) (metric.Float64Gauge, error) {
	r.customMu.RLock()
	if g, ok := r.customGauges[name]; ok {
		r.customMu.RUnlock()
		return g, nil
	}
	r.customMu.RUnlock()

	r.customMu.Lock()
	defer r.customMu.Unlock()

	if g, ok := r.customGauges[name]; ok {
		return g, nil
	}
	if r.customMetricCount >= r.maxCustomMetrics {
		return nil, fmt.Errorf("maximum custom metric count (%d) reached", r.maxCustomMetrics)
	}

	g, err := r.meter.Float64Gauge(name)
	if err != nil {
		return nil, fmt.Errorf("creating gauge %q: %w", name, err)
	}
	r.customGauges[name] = g
	r.customMetricCount++
	return g, nil
}

package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all metric instruments for the client library
type Metrics struct {
	// API Call Metrics
	APICallsTotal   metric.Int64Counter
	APICallDuration metric.Float64Histogram
	APICallErrors   metric.Int64Counter

	// Pagination Metrics
	ListPagesFetched metric.Int64Counter
	ListItemsYielded metric.Int64Counter

	// Throttling Metrics
	RateLimitWaitDuration metric.Float64Histogram
}

// newMetrics creates and registers all metric instruments
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}
	transportMeter := inst.Meter("transport")
	clientMeter := inst.Meter("client")

	var err error
	m.APICallsTotal, err = transportMeter.Int64Counter(
		"idtoolkit.api.calls.total",
		metric.WithDescription("Total number of Identity Toolkit API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api.calls.total counter: %w", err)
	}

	m.APICallDuration, err = transportMeter.Float64Histogram(
		"idtoolkit.api.call.duration",
		metric.WithDescription("Identity Toolkit API call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api.call.duration histogram: %w", err)
	}

	m.APICallErrors, err = transportMeter.Int64Counter(
		"idtoolkit.api.errors.total",
		metric.WithDescription("Total number of failed Identity Toolkit API calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create api.errors.total counter: %w", err)
	}

	m.ListPagesFetched, err = clientMeter.Int64Counter(
		"idtoolkit.list.pages.total",
		metric.WithDescription("Number of result pages fetched by list iterators"),
		metric.WithUnit("{page}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list.pages.total counter: %w", err)
	}

	m.ListItemsYielded, err = clientMeter.Int64Counter(
		"idtoolkit.list.items.total",
		metric.WithDescription("Number of provider configs yielded by list iterators"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list.items.total counter: %w", err)
	}

	m.RateLimitWaitDuration, err = transportMeter.Float64Histogram(
		"idtoolkit.ratelimit.wait.duration",
		metric.WithDescription("Time spent waiting on the outbound rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ratelimit.wait.duration histogram: %w", err)
	}

	return m, nil
}

// Helper methods for common metric recording patterns

// RecordAPICall records one round trip against the Identity Toolkit API
func (m *Metrics) RecordAPICall(ctx context.Context, method, operation string, statusCode int, durationMs float64, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("operation", operation),
		attribute.Int("status", statusCode),
	}

	m.APICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.APICallDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("operation", operation),
	))

	if err != nil || statusCode >= 400 {
		errorType := "transport"
		if statusCode >= 400 && statusCode < 500 {
			errorType = "client_error"
		} else if statusCode >= 500 {
			errorType = "server_error"
		}

		m.APICallErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("error_type", errorType),
		))
	}
}

// RecordPageFetch records a single page fetched by a list iterator
func (m *Metrics) RecordPageFetch(ctx context.Context, collection string, items int) {
	m.ListPagesFetched.Add(ctx, 1, metric.WithAttributes(
		attribute.String("collection", collection),
	))
	m.ListItemsYielded.Add(ctx, int64(items), metric.WithAttributes(
		attribute.String("collection", collection),
	))
}

// RecordRateLimitWait records time spent blocked on the outbound rate limiter
func (m *Metrics) RecordRateLimitWait(ctx context.Context, operation string, waitMs float64) {
	m.RateLimitWaitDuration.Record(ctx, waitMs, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

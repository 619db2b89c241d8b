package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "pulsedash"

// Metrics holds all PulseDash metric instruments.
type Metrics struct {
	LoginAttempts       metric.Int64Counter
	LoginFailures       metric.Int64Counter
	ContactSubmissions  metric.Int64Counter
	OverrideWrites      metric.Int64Counter
	SnapshotRefreshes   metric.Int64Counter
	AggregationDuration metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.LoginAttempts, err = meter.Int64Counter("pulsedash.login.attempts",
		metric.WithDescription("Number of dashboard login attempts"))
	if err != nil {
		return nil, err
	}

	m.LoginFailures, err = meter.Int64Counter("pulsedash.login.failures",
		metric.WithDescription("Number of failed dashboard login attempts"))
	if err != nil {
		return nil, err
	}

	m.ContactSubmissions, err = meter.Int64Counter("pulsedash.contact.submissions",
		metric.WithDescription("Number of contact form submissions"))
	if err != nil {
		return nil, err
	}

	m.OverrideWrites, err = meter.Int64Counter("pulsedash.overrides.writes",
		metric.WithDescription("Number of metric override upserts"))
	if err != nil {
		return nil, err
	}

	m.SnapshotRefreshes, err = meter.Int64Counter("pulsedash.snapshot.refreshes",
		metric.WithDescription("Number of full metric aggregations"))
	if err != nil {
		return nil, err
	}

	m.AggregationDuration, err = meter.Float64Histogram("pulsedash.snapshot.duration_seconds",
		metric.WithDescription("Metric aggregation duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

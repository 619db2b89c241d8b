package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "pulsedash"

// StartAggregationSpan starts a span covering a full snapshot rebuild.
func StartAggregationSpan(ctx context.Context) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "aggregate")
}

// StartCompanySpan starts a span for one company's stat collection within
// an aggregation.
func StartCompanySpan(ctx context.Context, company string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "aggregate.company",
		trace.WithAttributes(
			attribute.String("company", company),
		),
	)
}

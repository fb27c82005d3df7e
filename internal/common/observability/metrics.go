package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the otel meter provider. Instruments are exported through
// the default prometheus registry under the otel_ namespace, which keeps them
// apart from the promauto series of the same name on /metrics.
type Observability struct {
	meterProvider *metric.MeterProvider
	assessments   otelmetric.Int64Counter
	probability   otelmetric.Float64Histogram
}

func New(serviceName string) (*Observability, error) {
	exporter, err := prometheus.New(prometheus.WithNamespace("otel"))
	if err != nil {
		return &Observability{}, err
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	assessments, _ := meter.Int64Counter(
		"risk.assessments",
		otelmetric.WithDescription("Assessments computed by the risk engine"),
	)
	probability, _ := meter.Float64Histogram(
		"risk.probability",
		otelmetric.WithDescription("Distribution of dropout probabilities"),
		otelmetric.WithExplicitBucketBoundaries(0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0),
	)

	return &Observability{
		meterProvider: provider,
		assessments:   assessments,
		probability:   probability,
	}, nil
}

func (o *Observability) RecordAssessment(ctx context.Context, tier string, probability float64) {
	if o == nil || o.assessments == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("tier", tier))
	o.assessments.Add(ctx, 1, attrs)
	o.probability.Record(ctx, probability, attrs)
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return o.meterProvider.Shutdown(ctx)
}

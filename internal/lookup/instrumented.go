package lookup

import (
	"context"
	"time"

	"github.com/Gunvolt24/parcel_product/internal/domain"
	"github.com/Gunvolt24/parcel_product/internal/ports"
	"github.com/Gunvolt24/parcel_product/pkg/metrics"
	"github.com/Gunvolt24/parcel_product/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var _ ports.ProductLookup = (*Instrumented)(nil)

// Instrumented — латентность и результат Load в Prometheus и спан OTel.
type Instrumented struct {
	next ports.ProductLookup
}

func NewInstrumented(next ports.ProductLookup) *Instrumented {
	return &Instrumented{next: next}
}

func (i *Instrumented) Load(ctx context.Context, code float64) (domain.LookupResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "product.lookup")
	defer span.End()
	span.SetAttributes(attribute.Float64("product.code", code))

	start := time.Now()
	res, err := i.next.Load(ctx, code)

	result := "not_found"
	switch {
	case err != nil:
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
	case res.IsFound():
		result = "found"
	}
	span.SetAttributes(attribute.String("product.lookup.result", result))
	metrics.LookupDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	return res, err
}

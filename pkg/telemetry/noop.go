package telemetry

import (
	"context"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
)

const (
	NoopSinkName = "noop-sink"
)

// No operation sink for testing or defaulting.
type noopSink struct{}

// NewNoopSink returns a sink that accepts and discards every metric.
func NewNoopSink() Sink { return &noopSink{} }

func (s *noopSink) PutRowsProcessed(ctx context.Context, fulfilment domain.FulfilmentType, count int) error {
	return nil
}

func (s *noopSink) PutValidationError(ctx context.Context, fulfilment domain.FulfilmentType, field domain.ValidationField, count int) error {
	return nil
}

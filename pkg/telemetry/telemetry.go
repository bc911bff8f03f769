package telemetry

import (
	"context"

	"github.com/comfforts/logger"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
)

// Sink receives fulfilment run metrics. Publishing is best effort; a sink
// error never fails the run that produced the numbers.
type Sink interface {
	PutRowsProcessed(ctx context.Context, fulfilment domain.FulfilmentType, count int) error
	PutValidationError(ctx context.Context, fulfilment domain.FulfilmentType, field domain.ValidationField, count int) error
}

// Flush publishes a run report's counters to the sink, logging and
// swallowing any publish errors.
func Flush(ctx context.Context, sink Sink, report *domain.RunReport) {
	l, err := logger.LoggerFromContext(ctx)
	if err != nil {
		l = logger.GetSlogLogger()
	}

	if err := sink.PutRowsProcessed(ctx, report.Fulfilment, report.RowsProcessed); err != nil {
		l.Error("telemetry: publishing rows processed", "error", err.Error(), "fulfilment", report.Fulfilment)
	}

	for field, count := range report.Validation {
		if count == 0 {
			continue
		}
		if err := sink.PutValidationError(ctx, report.Fulfilment, field, count); err != nil {
			l.Error("telemetry: publishing validation count", "error", err.Error(), "field", string(field))
		}
	}
}

package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
	"github.com/pressrun/fulfilment-orchestra/pkg/telemetry"
)

// recordingSink captures every publish and optionally fails each call.
type recordingSink struct {
	err            error
	rowsProcessed  []int
	validationPuts map[domain.ValidationField]int
}

func newRecordingSink(err error) *recordingSink {
	return &recordingSink{
		err:            err,
		validationPuts: map[domain.ValidationField]int{},
	}
}

func (s *recordingSink) PutRowsProcessed(ctx context.Context, fulfilment domain.FulfilmentType, count int) error {
	s.rowsProcessed = append(s.rowsProcessed, count)
	return s.err
}

func (s *recordingSink) PutValidationError(ctx context.Context, fulfilment domain.FulfilmentType, field domain.ValidationField, count int) error {
	s.validationPuts[field] = count
	return s.err
}

func weeklyReport() *domain.RunReport {
	return &domain.RunReport{
		JobID:         "job-telemetry-1",
		Fulfilment:    domain.Weekly,
		RowsProcessed: 42,
		Validation: map[domain.ValidationField]int{
			domain.MissingAddress: 3,
			domain.MissingCountry: 1,
			domain.MissingName:    0,
		},
	}
}

func TestFlushPublishesCounters(t *testing.T) {
	sink := newRecordingSink(nil)

	telemetry.Flush(context.Background(), sink, weeklyReport())

	require.Equal(t, []int{42}, sink.rowsProcessed)
	require.Equal(t, 3, sink.validationPuts[domain.MissingAddress])
	require.Equal(t, 1, sink.validationPuts[domain.MissingCountry])

	// zero-count fields are not published
	_, put := sink.validationPuts[domain.MissingName]
	require.False(t, put)
}

func TestFlushSwallowsSinkErrors(t *testing.T) {
	sink := newRecordingSink(errors.New("metric backend unavailable"))

	// a failing sink never propagates; every counter is still attempted
	telemetry.Flush(context.Background(), sink, weeklyReport())

	require.Equal(t, []int{42}, sink.rowsProcessed)
	require.Len(t, sink.validationPuts, 2)
	require.Equal(t, 3, sink.validationPuts[domain.MissingAddress])
	require.Equal(t, 1, sink.validationPuts[domain.MissingCountry])
}

func TestNoopSink(t *testing.T) {
	sink := telemetry.NewNoopSink()
	ctx := context.Background()

	require.NoError(t, sink.PutRowsProcessed(ctx, domain.HomeDelivery, 10))
	require.NoError(t, sink.PutValidationError(ctx, domain.HomeDelivery, domain.MissingDeliveryAgent, 2))
}

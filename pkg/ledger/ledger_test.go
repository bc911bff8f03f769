package ledger_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
	"github.com/pressrun/fulfilment-orchestra/pkg/ledger"
)

func newTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "fulfilment-runs.db")
	l, err := ledger.NewLedger(dbFile)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, l.Close(context.Background()))
	})
	return l
}

func TestRecordAndFetchRuns(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	report := &domain.RunReport{
		JobID:         "job-1",
		Fulfilment:    domain.Weekly,
		DeliveryDate:  "2018-02-09",
		RowsProcessed: 42,
		RowsSuspended: 3,
		RowsSkipped:   1,
		Files: []domain.OutputFile{
			{Destination: "UK", FileName: "2018-02-09_WEEKLY_UK.csv"},
			{Destination: "ROW", FileName: "2018-02-09_WEEKLY_ROW.csv"},
		},
	}

	err := l.RecordRun(ctx, "job-1", domain.Weekly, report, ledger.RunStatusCompleted, "")
	require.NoError(t, err)

	runs, err := l.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "job-1", runs[0].JobID)
	require.Equal(t, string(domain.Weekly), runs[0].Fulfilment)
	require.Equal(t, "2018-02-09", runs[0].DeliveryDate)
	require.Equal(t, ledger.RunStatusCompleted, runs[0].Status)
	require.Equal(t, 42, runs[0].RowsProcessed)
	require.Equal(t, 2, runs[0].Files)
	require.Empty(t, runs[0].Error)
	require.NotEmpty(t, runs[0].RecordedAt)
}

func TestRecordFailedRunWithoutReport(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	err := l.RecordRun(ctx, "job-2", domain.HomeDelivery, nil, ledger.RunStatusFailed, "fulfilment: ambiguous or missing query result")
	require.NoError(t, err)

	runs, err := l.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, ledger.RunStatusFailed, runs[0].Status)
	require.Equal(t, 0, runs[0].RowsProcessed)
	require.Contains(t, runs[0].Error, "ambiguous or missing")
}

func TestRecentRunsLimit(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := l.RecordRun(ctx, "job", domain.Weekly, nil, ledger.RunStatusCompleted, "")
		require.NoError(t, err)
	}

	runs, err := l.RecentRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

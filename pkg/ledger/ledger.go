package ledger

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
)

const (
	ERR_LEDGER_DB_CONNECTION    = "ledger: error connecting to database"
	ERR_LEDGER_DB_DISCONNECTION = "ledger: error disconnecting from database"
	ERR_LEDGER_INSERT           = "ledger: error recording run"
)

var (
	ErrLedgerDBConn    = errors.New(ERR_LEDGER_DB_CONNECTION)
	ErrLedgerDBDisconn = errors.New(ERR_LEDGER_DB_DISCONNECTION)
	ErrLedgerInsert    = errors.New(ERR_LEDGER_INSERT)
)

const (
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

const fulfilmentRunSchema = `
CREATE TABLE IF NOT EXISTS fulfilment_run (
	job_id         TEXT NOT NULL,
	fulfilment     TEXT NOT NULL,
	delivery_date  TEXT NOT NULL,
	status         TEXT NOT NULL,
	rows_processed INTEGER NOT NULL,
	rows_suspended INTEGER NOT NULL,
	rows_skipped   INTEGER NOT NULL,
	files          INTEGER NOT NULL,
	error          TEXT,
	recorded_at    TEXT NOT NULL
);`

// Run is one recorded fulfilment run.
type Run struct {
	JobID         string `db:"job_id"`
	Fulfilment    string `db:"fulfilment"`
	DeliveryDate  string `db:"delivery_date"`
	Status        string `db:"status"`
	RowsProcessed int    `db:"rows_processed"`
	RowsSuspended int    `db:"rows_suspended"`
	RowsSkipped   int    `db:"rows_skipped"`
	Files         int    `db:"files"`
	Error         string `db:"error"`
	RecordedAt    string `db:"recorded_at"`
}

// Ledger keeps a local history of fulfilment runs for audit and replay.
type Ledger struct {
	store *sqlx.DB
}

func NewLedger(dbFile string) (*Ledger, error) {
	db, err := sqlx.Connect("sqlite3", dbFile)
	if err != nil {
		log.Println("ledger: error connecting to database:", err)
		return nil, ErrLedgerDBConn
	}
	db.MustExec(fulfilmentRunSchema)

	return &Ledger{
		store: db,
	}, nil
}

// RecordRun inserts one run row. report may be nil when the run failed
// before producing a report.
func (l *Ledger) RecordRun(ctx context.Context, jobID string, fulfilment domain.FulfilmentType, report *domain.RunReport, status, errText string) error {
	run := Run{
		JobID:      jobID,
		Fulfilment: string(fulfilment),
		Status:     status,
		Error:      errText,
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if report != nil {
		run.DeliveryDate = report.DeliveryDate
		run.RowsProcessed = report.RowsProcessed
		run.RowsSuspended = report.RowsSuspended
		run.RowsSkipped = report.RowsSkipped
		run.Files = len(report.Files)
	}

	qryStr := `INSERT INTO fulfilment_run
		(job_id, fulfilment, delivery_date, status, rows_processed, rows_suspended, rows_skipped, files, error, recorded_at)
		VALUES (:job_id, :fulfilment, :delivery_date, :status, :rows_processed, :rows_suspended, :rows_skipped, :files, :error, :recorded_at)`

	if _, err := l.store.NamedExecContext(ctx, qryStr, run); err != nil {
		log.Println("ledger: error recording run:", err)
		return ErrLedgerInsert
	}
	return nil
}

// RecentRuns returns the latest runs, newest first.
func (l *Ledger) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	runs := []Run{}
	qryStr := `SELECT * FROM fulfilment_run ORDER BY recorded_at DESC LIMIT $1`
	if err := l.store.SelectContext(ctx, &runs, qryStr, limit); err != nil {
		return nil, err
	}
	return runs, nil
}

func (l *Ledger) Close(ctx context.Context) error {
	if err := l.store.Close(); err != nil {
		log.Println("ledger: error closing database:", err)
		return ErrLedgerDBDisconn
	}
	return nil
}

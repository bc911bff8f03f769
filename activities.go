package fulfilment_orchestra

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/pressrun/fulfilment-orchestra/pkg/config"
	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
	"github.com/pressrun/fulfilment-orchestra/pkg/fulfilment"
	"github.com/pressrun/fulfilment-orchestra/pkg/ledger"
	"github.com/pressrun/fulfilment-orchestra/pkg/storage"
	"github.com/pressrun/fulfilment-orchestra/pkg/telemetry"
)

/**
 * activities used by the fulfilment run workflow.
 */
const (
	ResolveDeliveryDateActivityName = "ResolveDeliveryDateActivity"
	ProcessFulfilmentActivityName   = "ProcessFulfilmentActivity"
	PublishTelemetryActivityName    = "PublishTelemetryActivity"
	RecordRunActivityName           = "RecordRunActivity"
)

// Error messages used throughout the activities
const (
	ERR_MISSING_STORE_CLIENT   = "error missing object store client"
	ERR_MISSING_TELEMETRY_SINK = "error missing telemetry sink"
	ERR_MISSING_RUN_LEDGER     = "error missing run ledger"
	ERR_UNKNOWN_FULFILMENT     = "error unknown fulfilment type"
	ERR_FETCHING_CONFIG        = "error fetching fulfilment config"
	ERR_PROCESSING_FULFILMENT  = "error processing fulfilment"
)

// Standard Go errors for internal use
var (
	ErrMissingStoreClient   = errors.New(ERR_MISSING_STORE_CLIENT)
	ErrMissingTelemetrySink = errors.New(ERR_MISSING_TELEMETRY_SINK)
	ErrMissingRunLedger     = errors.New(ERR_MISSING_RUN_LEDGER)
	ErrUnknownFulfilment    = errors.New(ERR_UNKNOWN_FULFILMENT)
)

// Temporal application errors for workflow activities
var (
	ErrorMissingStoreClient   = temporal.NewApplicationErrorWithCause(ERR_MISSING_STORE_CLIENT, ERR_MISSING_STORE_CLIENT, ErrMissingStoreClient)
	ErrorMissingTelemetrySink = temporal.NewApplicationErrorWithCause(ERR_MISSING_TELEMETRY_SINK, ERR_MISSING_TELEMETRY_SINK, ErrMissingTelemetrySink)
	ErrorMissingRunLedger     = temporal.NewApplicationErrorWithCause(ERR_MISSING_RUN_LEDGER, ERR_MISSING_RUN_LEDGER, ErrMissingRunLedger)
	ErrorUnknownFulfilment    = temporal.NewApplicationErrorWithCause(ERR_UNKNOWN_FULFILMENT, ERR_UNKNOWN_FULFILMENT, ErrUnknownFulfilment)
)

// ResolveDeliveryDateActivity turns the request's date input into the final
// delivery date string. Date input problems are non-retryable; re-running
// the activity cannot fix a malformed request.
func ResolveDeliveryDateActivity(ctx context.Context, req *FulfilmentRunRequest) (string, error) {
	l := activity.GetLogger(ctx)
	l.Debug(
		"ResolveDeliveryDateActivity - started",
		slog.String("date", req.DeliveryDate),
		slog.String("target-day", req.TargetDay),
		slog.Int("min-days", req.MinDaysInAdvance),
	)

	date, err := fulfilment.ResolveDeliveryDate(fulfilment.DeliveryDateInput{
		Date:             req.DeliveryDate,
		Weekday:          req.TargetDay,
		MinDaysInAdvance: req.MinDaysInAdvance,
	}, time.Now())
	if err != nil {
		l.Error("ResolveDeliveryDateActivity - error resolving delivery date", slog.Any("error", err))
		return "", temporal.NewApplicationErrorWithCause(err.Error(), err.Error(), err)
	}

	resolved := date.Format(fulfilment.DeliveryDateFormat)
	l.Debug("ResolveDeliveryDateActivity - done", slog.String("delivery-date", resolved))
	return resolved, nil
}

// ProcessFulfilmentActivity runs the full pipeline for one fulfilment: fetch
// the stage config, assemble the plan, stream every manifest file through
// the destinations and upload the output files. The request's DeliveryDate
// must already hold the resolved date.
func ProcessFulfilmentActivity(ctx context.Context, req *FulfilmentRunRequest) (*domain.RunReport, error) {
	l := activity.GetLogger(ctx)
	l.Debug(
		"ProcessFulfilmentActivity - started",
		slog.String("job-id", req.JobID),
		slog.String("fulfilment", string(req.Fulfilment)),
		slog.String("stage", req.Stage),
		slog.String("delivery-date", req.DeliveryDate),
	)

	store, ok := ctx.Value(StoreContextKey).(storage.Store)
	if !ok || store == nil {
		l.Error(ERR_MISSING_STORE_CLIENT)
		return nil, ErrorMissingStoreClient
	}

	stage, err := config.ParseStage(req.Stage)
	if err != nil {
		l.Error("ProcessFulfilmentActivity - invalid stage", slog.Any("error", err), slog.String("stage", req.Stage))
		return nil, temporal.NewApplicationErrorWithCause(config.ErrMsgInvalidStage, config.ErrMsgInvalidStage, err)
	}

	cfg, err := config.FetchConfig(ctx, store, stage)
	if err != nil {
		l.Error(ERR_FETCHING_CONFIG, slog.Any("error", err), slog.String("stage", req.Stage))
		return nil, temporal.NewApplicationErrorWithCause(ERR_FETCHING_CONFIG, ERR_FETCHING_CONFIG, err)
	}

	date, err := fulfilment.ParseDeliveryDate(req.DeliveryDate)
	if err != nil {
		l.Error("ProcessFulfilmentActivity - invalid delivery date", slog.Any("error", err), slog.String("delivery-date", req.DeliveryDate))
		return nil, temporal.NewApplicationErrorWithCause(err.Error(), err.Error(), err)
	}

	var report *domain.RunReport
	switch req.Fulfilment {
	case domain.HomeDelivery:
		plan := fulfilment.NewHomeDeliveryPlan(cfg.Fulfilments.HomeDelivery.UploadFolder, cfg.InputPrefix, date)
		report, err = runPlan(ctx, store, plan, req)
	case domain.Weekly:
		plan := fulfilment.NewWeeklyPlan(weeklyFolders(cfg), cfg.InputPrefix)
		report, err = runPlan(ctx, store, plan, req)
	default:
		l.Error(ERR_UNKNOWN_FULFILMENT, slog.String("fulfilment", string(req.Fulfilment)))
		return nil, ErrorUnknownFulfilment
	}
	if err != nil {
		l.Error(ERR_PROCESSING_FULFILMENT, slog.Any("error", err), slog.String("fulfilment", string(req.Fulfilment)))
		return report, appError(err)
	}

	l.Debug(
		"ProcessFulfilmentActivity - done",
		slog.String("job-id", req.JobID),
		slog.Int("rows", report.RowsProcessed),
		slog.Int("suspended", report.RowsSuspended),
		slog.Int("files", len(report.Files)),
	)
	return report, nil
}

// PublishTelemetryActivity pushes a run report's counters to the configured
// telemetry sink. Publish failures are logged inside Flush and never fail
// the activity.
func PublishTelemetryActivity(ctx context.Context, report *domain.RunReport) error {
	l := activity.GetLogger(ctx)

	sink, ok := ctx.Value(TelemetryContextKey).(telemetry.Sink)
	if !ok || sink == nil {
		l.Error(ERR_MISSING_TELEMETRY_SINK)
		return ErrorMissingTelemetrySink
	}

	telemetry.Flush(ctx, sink, report)
	return nil
}

// RecordRunActivity appends the run outcome to the run ledger.
func RecordRunActivity(ctx context.Context, in *RecordRunInput) error {
	l := activity.GetLogger(ctx)

	runLedger, ok := ctx.Value(LedgerContextKey).(*ledger.Ledger)
	if !ok || runLedger == nil {
		l.Error(ERR_MISSING_RUN_LEDGER)
		return ErrorMissingRunLedger
	}

	if err := runLedger.RecordRun(ctx, in.JobID, in.Fulfilment, in.Report, in.Status, in.Error); err != nil {
		l.Error("RecordRunActivity - error recording run", slog.Any("error", err), slog.String("job-id", in.JobID))
		return temporal.NewApplicationErrorWithCause(ledger.ERR_LEDGER_INSERT, ledger.ERR_LEDGER_INSERT, err)
	}
	return nil
}

func runPlan[T any](ctx context.Context, store storage.Store, plan fulfilment.Plan[T], req *FulfilmentRunRequest) (*domain.RunReport, error) {
	p := fulfilment.NewPipeline(store, plan)
	return p.Run(ctx, req.JobID, fulfilment.DeliveryDateInput{Date: req.DeliveryDate}, time.Now(), req.Manifest)
}

func weeklyFolders(cfg *config.Config) fulfilment.WeeklyFolders {
	w := cfg.Fulfilments.Weekly
	return fulfilment.WeeklyFolders{
		UK:     w["UK"].UploadFolder,
		CA:     w["CA"].UploadFolder,
		CAHand: w["CA_HAND"].UploadFolder,
		US:     w["USA"].UploadFolder,
		AU:     w["AU"].UploadFolder,
		EU:     w["EU"].UploadFolder,
		ROW:    w["ROW"].UploadFolder,
	}
}

// appError classifies a pipeline error into a typed application error so
// retry policies can tell permanent request problems from transient source
// reads.
func appError(err error) error {
	for _, sentinel := range []error{
		fulfilment.ErrInvalidDateFormat,
		fulfilment.ErrMissingDateInput,
		fulfilment.ErrInvalidWeekday,
		fulfilment.ErrAmbiguousOrMissingQuery,
		fulfilment.ErrSourceRead,
		fulfilment.ErrUploadFailed,
	} {
		if errors.Is(err, sentinel) {
			return temporal.NewApplicationErrorWithCause(sentinel.Error(), sentinel.Error(), err)
		}
	}
	return temporal.NewApplicationErrorWithCause(ERR_PROCESSING_FULFILMENT, ERR_PROCESSING_FULFILMENT, err)
}

package fulfilment_orchestra

import (
	"fmt"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
	"github.com/pressrun/fulfilment-orchestra/pkg/ledger"
)

const (
	FulfilmentRunWorkflowAlias string = "fulfilment-run-workflow-alias"
)

// FulfilmentRunWorkflow produces one delivery-date batch of fulfilment
// files: resolve the delivery date, run the pipeline, then record and
// publish the outcome.
func FulfilmentRunWorkflow(ctx workflow.Context, req *FulfilmentRunRequest) (*domain.RunReport, error) {
	l := workflow.GetLogger(ctx)

	wkflname := workflow.GetInfo(ctx).WorkflowType.Name

	l.Debug(
		"FulfilmentRunWorkflow workflow started",
		"job-id", req.JobID,
		"fulfilment", string(req.Fulfilment),
		"stage", req.Stage,
		"workflow", wkflname,
	)

	resp, err := runFulfilment(ctx, req)
	if err != nil {
		switch wkflErr := err.(type) {
		case *temporal.ApplicationError:
			l.Error(
				"FulfilmentRunWorkflow - temporal application error",
				"workflow", wkflname,
				"error", err.Error(),
				"type", wkflErr.Type(),
			)
		default:
			l.Error(
				"FulfilmentRunWorkflow - temporal error",
				"workflow", wkflname,
				"error", err.Error(),
				"type", fmt.Sprintf("%T", err),
			)
		}
		return resp, err
	}

	l.Debug(
		"FulfilmentRunWorkflow workflow completed",
		"job-id", req.JobID,
		"fulfilment", string(req.Fulfilment),
		"delivery-date", resp.DeliveryDate,
		"workflow", wkflname,
	)
	return resp, nil
}

func runFulfilment(ctx workflow.Context, req *FulfilmentRunRequest) (*domain.RunReport, error) {
	l := workflow.GetLogger(ctx)

	// Resolve the delivery date first; every later step keys off it.
	resolved, err := ExecuteResolveDeliveryDateActivity(ctx, req)
	if err != nil {
		recordOutcome(ctx, req, nil, ledger.RunStatusFailed, err)
		return nil, err
	}
	req.DeliveryDate = resolved
	req.TargetDay = ""

	report, err := ExecuteProcessFulfilmentActivity(ctx, req)
	if err != nil {
		recordOutcome(ctx, req, report, ledger.RunStatusFailed, err)
		return report, err
	}

	recordOutcome(ctx, req, report, ledger.RunStatusCompleted, nil)

	// Telemetry is best effort; a sink failure never fails a run that
	// already produced its files.
	if err := AsyncExecutePublishTelemetryActivity(ctx, report).Get(ctx, nil); err != nil {
		l.Error(
			"FulfilmentRunWorkflow - error publishing telemetry",
			"job-id", req.JobID,
			"error", err.Error(),
		)
	}

	return report, nil
}

// recordOutcome appends the run to the ledger, swallowing ledger errors so
// bookkeeping never masks the run result.
func recordOutcome(ctx workflow.Context, req *FulfilmentRunRequest, report *domain.RunReport, status string, runErr error) {
	l := workflow.GetLogger(ctx)

	in := &RecordRunInput{
		JobID:      req.JobID,
		Fulfilment: req.Fulfilment,
		Report:     report,
		Status:     status,
	}
	if runErr != nil {
		in.Error = runErr.Error()
	}

	if err := AsyncExecuteRecordRunActivity(ctx, in).Get(ctx, nil); err != nil {
		l.Error(
			"FulfilmentRunWorkflow - error recording run",
			"job-id", req.JobID,
			"error", err.Error(),
		)
	}
}

package fulfilment_orchestra

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/pressrun/fulfilment-orchestra/pkg/config"
	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
	"github.com/pressrun/fulfilment-orchestra/pkg/fulfilment"
)

func DefaultActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		ScheduleToStartTimeout: time.Second * 5,
		StartToCloseTimeout:    time.Minute * 10,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	}
}

func ExecuteResolveDeliveryDateActivity(ctx workflow.Context, req *FulfilmentRunRequest) (string, error) {
	// setup activity options
	ao := DefaultActivityOptions()
	ao.StartToCloseTimeout = time.Second * 10
	ao.RetryPolicy = &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    3,
		NonRetryableErrorTypes: []string{
			fulfilment.ErrMsgInvalidDateFormat,
			fulfilment.ErrMsgMissingDateInput,
			fulfilment.ErrMsgInvalidWeekday,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var resolved string
	err := workflow.ExecuteActivity(ctx, ResolveDeliveryDateActivity, req).Get(ctx, &resolved)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

func ExecuteProcessFulfilmentActivity(ctx workflow.Context, req *FulfilmentRunRequest) (*domain.RunReport, error) {
	// setup activity options
	ao := DefaultActivityOptions()
	ao.RetryPolicy = &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    5,
		NonRetryableErrorTypes: []string{
			ERR_MISSING_STORE_CLIENT,
			ERR_UNKNOWN_FULFILMENT,
			config.ErrMsgInvalidStage,
			fulfilment.ErrMsgInvalidDateFormat,
			fulfilment.ErrMsgMissingDateInput,
			fulfilment.ErrMsgInvalidWeekday,
			fulfilment.ErrMsgAmbiguousOrMissingQuery,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var resp domain.RunReport
	err := workflow.ExecuteActivity(ctx, ProcessFulfilmentActivity, req).Get(ctx, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func AsyncExecutePublishTelemetryActivity(ctx workflow.Context, report *domain.RunReport) workflow.Future {
	// setup activity options
	ao := DefaultActivityOptions()
	ao.StartToCloseTimeout = time.Minute
	ao.RetryPolicy = &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    3,
		NonRetryableErrorTypes: []string{
			ERR_MISSING_TELEMETRY_SINK,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	return workflow.ExecuteActivity(ctx, PublishTelemetryActivity, report)
}

func AsyncExecuteRecordRunActivity(ctx workflow.Context, in *RecordRunInput) workflow.Future {
	// setup activity options
	ao := DefaultActivityOptions()
	ao.StartToCloseTimeout = time.Minute
	ao.RetryPolicy = &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    3,
		NonRetryableErrorTypes: []string{
			ERR_MISSING_RUN_LEDGER,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	return workflow.ExecuteActivity(ctx, RecordRunActivity, in)
}

package telemetry

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
)

const (
	MetricNamespace      = "fulfilment"
	MetricRowsProcessed  = "RowsProcessed"
	MetricValidationMiss = "ValidationError"
)

// CloudWatchSink publishes run counters to a CloudWatch namespace, one
// datum per call, dimensioned by fulfilment type.
type CloudWatchSink struct {
	client *cloudwatch.Client
}

func NewCloudWatchSink(ctx context.Context) (*CloudWatchSink, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("telemetry: loading aws config: %w", err)
	}
	return &CloudWatchSink{
		client: cloudwatch.NewFromConfig(awsCfg),
	}, nil
}

func (s *CloudWatchSink) PutRowsProcessed(ctx context.Context, fulfilment domain.FulfilmentType, count int) error {
	return s.put(ctx, MetricRowsProcessed, count, []types.Dimension{
		{Name: aws.String("Fulfilment"), Value: aws.String(string(fulfilment))},
	})
}

func (s *CloudWatchSink) PutValidationError(ctx context.Context, fulfilment domain.FulfilmentType, field domain.ValidationField, count int) error {
	return s.put(ctx, MetricValidationMiss, count, []types.Dimension{
		{Name: aws.String("Fulfilment"), Value: aws.String(string(fulfilment))},
		{Name: aws.String("Field"), Value: aws.String(string(field))},
	})
}

func (s *CloudWatchSink) put(ctx context.Context, name string, count int, dims []types.Dimension) error {
	_, err := s.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(MetricNamespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(float64(count)),
				Unit:       types.StandardUnitCount,
				Dimensions: dims,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("telemetry: putting %s: %w", name, err)
	}
	return nil
}

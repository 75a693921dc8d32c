package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/coolcalc/internal/domain"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes share notifications to a topic.
type SNSClient struct {
	svc      snsAPI
	topicArn string
	log      zerolog.Logger
}

func NewSNSClient(ctx context.Context, region, topicArn string, log zerolog.Logger) (*SNSClient, error) {
	cfg, err := loadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
		log:      log.With().Str("component", "sns").Logger(),
	}, nil
}

func (c *SNSClient) Publish(ctx context.Context, subject, message string) error {
	result, err := c.svc.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	c.log.Debug().Str("message_id", aws.ToString(result.MessageId)).Msg("notification sent")
	return nil
}

// SendShareNotice announces a shared report.
func (c *SNSClient) SendShareNotice(ctx context.Context, rec *domain.CalculationRecord, url string) error {
	subject := fmt.Sprintf("CoolCalc: %s report shared", rec.Room.Title())
	message := fmt.Sprintf(
		"Cooling Load Report\n\n"+
			"Room type: %s\n"+
			"Calculation: %s\n"+
			"Final load: %.2f kW (%.2f TR)\n"+
			"Calculated: %s\n\n"+
			"Report: %s",
		rec.Room.Title(),
		rec.ID,
		rec.FinalKW,
		rec.TotalTR,
		rec.CreatedAt.Format("2006-01-02 15:04"),
		url,
	)
	return c.Publish(ctx, subject, message)
}

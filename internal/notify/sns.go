package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSGateway dispatches SMS via AWS SNS. The SDK client pools its own
// connections, so one gateway is shared by all sends.
type SNSGateway struct {
	client *sns.Client
}

func NewSNSGateway(ctx context.Context, region string) (*SNSGateway, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return &SNSGateway{client: sns.NewFromConfig(awsCfg)}, nil
}

func (g *SNSGateway) Publish(ctx context.Context, to, body string) (string, error) {
	out, err := g.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(body),
	})
	if err != nil {
		return "", &GatewayError{Err: err}
	}
	return aws.ToString(out.MessageId), nil
}

// Status is best-effort: SNS exposes per-message delivery status only
// through CloudWatch delivery logs, so a published message is reported
// as accepted.
func (g *SNSGateway) Status(ctx context.Context, messageID string) (string, error) {
	if messageID == "" {
		return "", &GatewayError{Err: fmt.Errorf("empty message id")}
	}
	return "accepted", nil
}

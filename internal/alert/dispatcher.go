package alert

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/rs/zerolog/log"
)

// Dispatcher delivers a notification for a fired rule. The engine treats
// delivery as fire-and-forget; guarantees past the publish call belong to
// the dispatching service.
type Dispatcher interface {
	Dispatch(ctx context.Context, targetUserID, title, body string, metadata map[string]string) error
}

// LogDispatcher writes notifications to the log. Used by the local CLI and
// as a stand-in when no push pipeline is configured.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, targetUserID, title, body string, metadata map[string]string) error {
	log.Info().Str("user_id", targetUserID).Str("title", title).Str("body", body).
		Interface("metadata", metadata).Msg("Alert notification")
	return nil
}

// snsAPI is the slice of the SNS API the dispatcher uses.
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSDispatcher publishes notifications to an SNS topic consumed by the
// push-delivery service.
type SNSDispatcher struct {
	client   snsAPI
	topicARN string
}

func NewSNSDispatcher(ctx context.Context, topicARN string) (*SNSDispatcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &SNSDispatcher{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
	}, nil
}

func (d *SNSDispatcher) Dispatch(ctx context.Context, targetUserID, title, body string, metadata map[string]string) error {
	attributes := map[string]snstypes.MessageAttributeValue{
		"userId": {DataType: aws.String("String"), StringValue: aws.String(targetUserID)},
		"title":  {DataType: aws.String("String"), StringValue: aws.String(title)},
	}
	for key, value := range metadata {
		attributes[key] = snstypes.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(value),
		}
	}

	_, err := d.client.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(d.topicARN),
		Message:           aws.String(body),
		MessageAttributes: attributes,
	})
	if err != nil {
		return fmt.Errorf("publishing notification: %w", err)
	}

	log.Debug().Str("user_id", targetUserID).Msg("Published alert notification")
	return nil
}

package sqs

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
)

// API is the subset of *sqs.Client the listener needs.
type API interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error)
}

// Client wraps the AWS SQS client with the configured polling settings
type Client struct {
	sqs    API
	config config.SQSConfig
	logger *zap.Logger
}

func NewClient(api API, cfg config.SQSConfig, logger *zap.Logger) *Client {
	return &Client{
		sqs:    api,
		config: WithDefaults(cfg),
		logger: logger.With(zap.String("component", "sqs_client")),
	}
}

// SendMessage sends a message to the specified queue
func (c *Client) SendMessage(ctx context.Context, queueURL, messageBody string, attributes map[string]string) (*sqs.SendMessageOutput, error) {
	input := &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(messageBody),
	}

	if len(attributes) > 0 {
		messageAttributes := make(map[string]types.MessageAttributeValue, len(attributes))
		for key, value := range attributes {
			messageAttributes[key] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(value),
			}
		}
		input.MessageAttributes = messageAttributes
	}

	c.logger.Debug("Sending message to SQS",
		zap.String("queue_url", queueURL),
		zap.Int("attributes_count", len(attributes)))

	return c.sqs.SendMessage(ctx, input)
}

// ReceiveMessages long-polls the queue. Each message carries its approximate
// receive count, which drives the retry budget.
func (c *Client) ReceiveMessages(ctx context.Context, queueURL string) (*sqs.ReceiveMessageOutput, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(queueURL),
		MaxNumberOfMessages: int32(c.config.Polling.MaxMessages),
		WaitTimeSeconds:     int32(c.config.Polling.WaitTimeSeconds),
		VisibilityTimeout:   int32(c.config.Polling.VisibilityTimeoutSeconds),
		MessageAttributeNames: []string{
			"All",
		},
		MessageSystemAttributeNames: []types.MessageSystemAttributeName{
			types.MessageSystemAttributeNameApproximateReceiveCount,
		},
	}

	return c.sqs.ReceiveMessage(ctx, input)
}

// DeleteMessage deletes a message from the queue
func (c *Client) DeleteMessage(ctx context.Context, queueURL, receiptHandle string) error {
	input := &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	}

	c.logger.Debug("Deleting message from SQS",
		zap.String("queue_url", queueURL))

	_, err := c.sqs.DeleteMessage(ctx, input)
	return err
}

// ChangeMessageVisibility hides a message for visibilityTimeout seconds
func (c *Client) ChangeMessageVisibility(ctx context.Context, queueURL, receiptHandle string, visibilityTimeout int32) error {
	input := &sqs.ChangeMessageVisibilityInput{
		QueueUrl:          aws.String(queueURL),
		ReceiptHandle:     aws.String(receiptHandle),
		VisibilityTimeout: visibilityTimeout,
	}

	c.logger.Debug("Changing message visibility",
		zap.String("queue_url", queueURL),
		zap.Int32("visibility_timeout", visibilityTimeout))

	_, err := c.sqs.ChangeMessageVisibility(ctx, input)
	return err
}

func (c *Client) Config() config.SQSConfig {
	return c.config
}

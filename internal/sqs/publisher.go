package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SenderAPI defines the interface for SQS operations used by Publisher.
type SenderAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Publisher handles publishing messages to a single SQS queue.
type Publisher struct {
	client   SenderAPI
	queueURL string
}

// NewPublisher creates a new SQS Publisher with the given client and queue URL.
func NewPublisher(client SenderAPI, queueURL string) *Publisher {
	return &Publisher{
		client:   client,
		queueURL: queueURL,
	}
}

// PublishAuthEmail publishes an auth email message to the queue.
func (p *Publisher) PublishAuthEmail(ctx context.Context, msg AuthEmailMessage) error {
	return p.publish(ctx, msg)
}

// PublishOrderEmail publishes an order email message to the queue.
func (p *Publisher) PublishOrderEmail(ctx context.Context, msg OrderEmailMessage) error {
	return p.publish(ctx, msg)
}

func (p *Publisher) publish(ctx context.Context, msg interface{}) error {
	messageBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(messageBody)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

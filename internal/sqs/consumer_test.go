package sqs

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSQSConsumerClient is a mock implementation of the SQS client for consumer testing.
type mockSQSConsumerClient struct {
	receiveMessageFunc func(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	deleteMessageFunc  func(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	deleteCalls        int
}

func (m *mockSQSConsumerClient) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	if m.receiveMessageFunc != nil {
		return m.receiveMessageFunc(ctx, params, optFns...)
	}
	return &sqs.ReceiveMessageOutput{Messages: []types.Message{}}, nil
}

func (m *mockSQSConsumerClient) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	m.deleteCalls++
	if m.deleteMessageFunc != nil {
		return m.deleteMessageFunc(ctx, params, optFns...)
	}
	return &sqs.DeleteMessageOutput{}, nil
}

func TestConsumer_processMessage(t *testing.T) {
	t.Run("passes the body to the handler", func(t *testing.T) {
		// given
		var handled []byte
		consumer := NewConsumer(nil, "https://sqs.us-east-1.amazonaws.com/123456789/auth-email",
			func(_ context.Context, body []byte) error {
				handled = body
				return nil
			})

		messageBody := `{"to":"user@example.com","subject":"OTP","otp":"123456"}`
		message := types.Message{
			Body:          aws.String(messageBody),
			ReceiptHandle: aws.String("test-receipt-handle"),
		}

		// when
		err := consumer.processMessage(context.Background(), message)

		// then
		require.NoError(t, err)
		assert.Equal(t, messageBody, string(handled))
	})

	t.Run("nil message body", func(t *testing.T) {
		// given
		consumer := NewConsumer(nil, "https://sqs.us-east-1.amazonaws.com/123456789/auth-email",
			func(_ context.Context, _ []byte) error { return nil })

		message := types.Message{
			Body:          nil,
			ReceiptHandle: aws.String("test-receipt-handle"),
		}

		// when
		err := consumer.processMessage(context.Background(), message)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "message body is nil")
	})

	t.Run("handler error is returned", func(t *testing.T) {
		// given
		consumer := NewConsumer(nil, "https://sqs.us-east-1.amazonaws.com/123456789/auth-email",
			func(_ context.Context, _ []byte) error {
				return errors.New("handler failed")
			})

		message := types.Message{
			Body:          aws.String(`{}`),
			ReceiptHandle: aws.String("test-receipt-handle"),
		}

		// when
		err := consumer.processMessage(context.Background(), message)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "handler failed")
	})
}

func TestConsumer_receiveMessages(t *testing.T) {
	queueURL := "https://sqs.us-east-1.amazonaws.com/123456789/order-email"

	t.Run("handled messages are deleted", func(t *testing.T) {
		// given
		mockClient := &mockSQSConsumerClient{
			receiveMessageFunc: func(_ context.Context, params *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
				assert.Equal(t, queueURL, *params.QueueUrl)
				return &sqs.ReceiveMessageOutput{
					Messages: []types.Message{
						{Body: aws.String(`{"order_id":"1"}`), ReceiptHandle: aws.String("rh-1")},
						{Body: aws.String(`{"order_id":"2"}`), ReceiptHandle: aws.String("rh-2")},
					},
				}, nil
			},
		}

		consumer := NewConsumer(mockClient, queueURL,
			func(_ context.Context, _ []byte) error { return nil })

		// when
		err := consumer.receiveMessages(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, mockClient.deleteCalls)
	})

	t.Run("failed messages stay on the queue", func(t *testing.T) {
		// given
		mockClient := &mockSQSConsumerClient{
			receiveMessageFunc: func(_ context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
				return &sqs.ReceiveMessageOutput{
					Messages: []types.Message{
						{Body: aws.String(`{"order_id":"1"}`), ReceiptHandle: aws.String("rh-1")},
					},
				}, nil
			},
		}

		consumer := NewConsumer(mockClient, queueURL,
			func(_ context.Context, _ []byte) error {
				return errors.New("order not ready")
			})

		// when
		err := consumer.receiveMessages(context.Background())

		// then: the receive loop itself succeeds, but nothing is acknowledged
		require.NoError(t, err)
		assert.Equal(t, 0, mockClient.deleteCalls)
	})

	t.Run("receive error is returned", func(t *testing.T) {
		// given
		mockClient := &mockSQSConsumerClient{
			receiveMessageFunc: func(_ context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
				return nil, errors.New("connection refused")
			},
		}

		consumer := NewConsumer(mockClient, queueURL,
			func(_ context.Context, _ []byte) error { return nil })

		// when
		err := consumer.receiveMessages(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to receive messages")
	})
}

func TestConsumer_deleteMessage(t *testing.T) {
	t.Run("successful message deletion", func(t *testing.T) {
		// given
		queueURL := "https://sqs.us-east-1.amazonaws.com/123456789/auth-email"
		ctx := context.Background()

		mockClient := &mockSQSConsumerClient{
			deleteMessageFunc: func(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
				assert.Equal(t, queueURL, *params.QueueUrl)
				assert.NotNil(t, params.ReceiptHandle)
				return &sqs.DeleteMessageOutput{}, nil
			},
		}

		consumer := NewConsumer(mockClient, queueURL,
			func(_ context.Context, _ []byte) error { return nil })

		message := types.Message{
			ReceiptHandle: aws.String("test-receipt-handle"),
		}

		// when
		err := consumer.deleteMessage(ctx, message)

		// then
		require.NoError(t, err)
	})

	t.Run("delete failure is reported", func(t *testing.T) {
		// given
		mockClient := &mockSQSConsumerClient{
			deleteMessageFunc: func(_ context.Context, _ *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
				return nil, errors.New("access denied")
			},
		}

		consumer := NewConsumer(mockClient, "https://sqs.us-east-1.amazonaws.com/123456789/auth-email",
			func(_ context.Context, _ []byte) error { return nil })

		// when
		err := consumer.deleteMessage(context.Background(), types.Message{ReceiptHandle: aws.String("rh")})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete message")
	})
}

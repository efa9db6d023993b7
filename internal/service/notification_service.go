package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vuhoang-dev/store-backend/internal/mail"
	"github.com/vuhoang-dev/store-backend/internal/metrics"
	"github.com/vuhoang-dev/store-backend/internal/repository"
	"github.com/vuhoang-dev/store-backend/internal/sqs"
)

// NotificationService turns queue messages into outbound emails. Each handler
// is a stateless single-shot unit: returning an error leaves the message on
// the queue for redelivery, returning nil acknowledges it.
type NotificationService struct {
	orders repository.OrderRepository
	sender mail.EmailSender
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(orders repository.OrderRepository, sender mail.EmailSender) *NotificationService {
	return &NotificationService{
		orders: orders,
		sender: sender,
	}
}

// HandleAuthEmail forwards an auth email message to the email sender.
func (ns *NotificationService) HandleAuthEmail(ctx context.Context, body []byte) error {
	var msg sqs.AuthEmailMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal auth email message: %w", err)
	}

	slog.Info("Received auth email message", slog.String("to", msg.To))

	if err := ns.sender.SendAuthEmail(ctx, msg.To, msg.Subject, msg.OTP); err != nil {
		return err
	}

	metrics.EmailsSent.WithLabelValues("auth").Inc()
	slog.Info("Auth email sent", slog.String("to", msg.To))
	return nil
}

// HandleOrderEmail resolves the referenced order and forwards it to the email
// sender. A message pointing at a missing order is logged and dropped rather
// than redelivered.
func (ns *NotificationService) HandleOrderEmail(ctx context.Context, body []byte) error {
	var msg sqs.OrderEmailMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal order email message: %w", err)
	}

	slog.Info("Received order email message", slog.String("order_id", msg.OrderID))

	orderID, err := uuid.Parse(msg.OrderID)
	if err != nil {
		slog.Error("Invalid order ID in message", slog.String("order_id", msg.OrderID), slog.Any("err", err))
		metrics.EmailsDropped.Inc()
		return nil
	}

	order, err := ns.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Error("Order not found, dropping message", slog.String("order_id", msg.OrderID))
			metrics.EmailsDropped.Inc()
			return nil
		}
		return err
	}

	if err := ns.sender.SendOrderEmail(ctx, msg.To, msg.Subject, order, msg.ConfirmLink); err != nil {
		return err
	}

	metrics.EmailsSent.WithLabelValues("order").Inc()
	slog.Info("Order email sent", slog.String("to", msg.To), slog.String("order_id", msg.OrderID))
	return nil
}

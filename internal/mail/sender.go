// Package mail sends transactional emails over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/vuhoang-dev/store-backend/internal/config"
	"github.com/vuhoang-dev/store-backend/internal/model"
)

// EmailSender is the outbound email contract used by the notification service.
type EmailSender interface {
	SendAuthEmail(ctx context.Context, to, subject, otp string) error
	SendOrderEmail(ctx context.Context, to, subject string, order *model.Order, confirmLink string) error
}

// SMTPSender implements EmailSender over a plain SMTP connection.
type SMTPSender struct {
	conf config.SMTP
}

// NewSMTPSender creates a new SMTPSender from the given configuration.
func NewSMTPSender(conf config.SMTP) *SMTPSender {
	return &SMTPSender{conf: conf}
}

// SendAuthEmail sends an authentication email carrying a one-time code.
func (s *SMTPSender) SendAuthEmail(_ context.Context, to, subject, otp string) error {
	body := fmt.Sprintf("Mã xác thực của bạn là: %s\nMã có hiệu lực trong 5 phút.", otp)
	return s.send(to, subject, body)
}

// SendOrderEmail sends an order confirmation email with a confirmation link.
func (s *SMTPSender) SendOrderEmail(_ context.Context, to, subject string, order *model.Order, confirmLink string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Xin chào %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Đơn hàng %s của bạn đã được ghi nhận.\n\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d: %s\n", item.Title, item.Quantity, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTổng cộng: %s\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "Xác nhận đơn hàng tại: %s\n", confirmLink)
	return s.send(to, subject, b.String())
}

func (s *SMTPSender) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		s.conf.From, to, subject, body)

	addr := s.conf.Host + ":" + s.conf.Port
	var auth smtp.Auth
	if s.conf.User != "" {
		auth = smtp.PlainAuth("", s.conf.User, s.conf.Password, s.conf.Host)
	}

	if err := smtp.SendMail(addr, auth, s.conf.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

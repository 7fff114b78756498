package email

import (
	"context"
	"fmt"
	"net/smtp"
	"os"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/applog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Sender interface {
	SendOrderConfirmation(ctx context.Context, to string, event domain.OrderCreatedEvent) error
}

type smtpSender struct {
	from     string
	password string
	host     string
	port     string
	logger   *zap.Logger
	tracer   trace.Tracer
}

func NewSMTPSender(logger *zap.Logger) Sender {
	return &smtpSender{
		from:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		logger:   logger,
		tracer:   otel.Tracer("email/sender"),
	}
}

func (s *smtpSender) SendOrderConfirmation(ctx context.Context, to string, event domain.OrderCreatedEvent) error {
	ctx, span := s.tracer.Start(ctx, "smtp.SendOrderConfirmation")
	defer span.End()

	span.SetAttributes(
		attribute.String("to.email", to),
		attribute.String("order_number", event.OrderNumber),
	)

	subject := fmt.Sprintf("Subject: Order %s confirmed\n", event.OrderNumber)
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	body := fmt.Sprintf(`
		<h1>Thanks for your order!</h1>
		<p>Your order <b>%s</b> has been received.</p>
		<p>Total: $%.2f</p>
		<p>We will notify you when it ships or is ready for pickup.</p>
	`, event.OrderNumber, float64(event.Total)/100)

	msg := []byte(subject + mime + body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	applog.Info(
		ctx,
		s.logger,
		"Sending order confirmation email",
		zap.String("to", to),
		zap.String("order_number", event.OrderNumber),
	)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		span.RecordError(err)
		applog.Error(
			ctx,
			s.logger,
			"Error sending order confirmation email",
			zap.String("to", to),
			zap.Error(err),
		)

		return fmt.Errorf("failed to send mail: %v", err)
	}

	applog.Info(ctx, s.logger, "Order confirmation email sent successfully")
	return nil
}

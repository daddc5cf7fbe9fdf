package mailer

import (
	"context"
	"fmt"
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	"github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
	"github.com/MaxTecnology/rede-trade-back/internal/platform/config"
)

// SMTPNotifier sends plain-text emails over SMTP.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPNotifier creates a Notifier backed by the configured SMTP server.
func NewSMTPNotifier(cfg *config.Config) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

var _ services.Notifier = (*SMTPNotifier)(nil)

// Notify sends one message. Context cancellation is honored before dialing;
// gomail itself does not take a context.
func (n *SMTPNotifier) Notify(ctx context.Context, recipientEmail string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipientEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", recipientEmail, err)
	}
	return nil
}

// LogNotifier is used when no SMTP server is configured: messages are logged
// and reported as sent, which keeps local development flowing.
type LogNotifier struct {
	Logger *slog.Logger
}

var _ services.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Notify(_ context.Context, recipientEmail string, subject string, _ string) error {
	n.Logger.Info("Notification (not sent, SMTP disabled)",
		slog.String("to", recipientEmail),
		slog.String("subject", subject),
	)
	return nil
}

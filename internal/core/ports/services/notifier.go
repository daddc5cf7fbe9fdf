package services

import "context"

// Notifier sends plain-text notifications to participants. The SMTP mailer is
// the production implementation; tests substitute a mock.
type Notifier interface {
	// Notify delivers one message. Implementations must not block past the
	// context deadline.
	Notify(ctx context.Context, recipientEmail string, subject string, body string) error
}

// Package mailer provides outbound email delivery for the newsletter.
package mailer

import "context"

// Mailer sends a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NoOp is a no-operation Mailer used when SMTP is not configured.
// It avoids nil checks in the delivery path.
type NoOp struct{}

// NewNoOp creates a new NoOp mailer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Send does nothing and returns nil immediately.
func (n *NoOp) Send(ctx context.Context, to, subject, htmlBody string) error {
	return nil
}

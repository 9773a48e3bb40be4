package notify

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/wolfman30/lead-relay/pkg/logging"
)

// EmailSender defines the interface for sending emails.
// Implementations can be swapped (Mailjet, SendGrid, SES) without changing callers.
//
// Send makes a single delivery attempt. A provider that answers with a
// non-success status yields a *ProviderError; any other error means the
// request never produced a usable provider answer.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents an email to be sent. The sender identity belongs to
// the EmailSender configuration, not the message.
type EmailMessage struct {
	To          string
	ToName      string
	Subject     string
	Body        string // Plain text body
	HTML        string // Optional HTML body
	ReplyTo     string
	ReplyToName string
}

// ProviderError is returned when the provider answered with a non-success status.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("notify: %s returned status %d", e.Provider, e.StatusCode)
}

// headerSafe strips control characters and line breaks from every field that
// ends up in a mail header. Bodies are left untouched.
func (m EmailMessage) headerSafe() EmailMessage {
	m.To = headerValue(m.To)
	m.ToName = headerValue(m.ToName)
	m.Subject = headerValue(m.Subject)
	m.ReplyTo = headerValue(m.ReplyTo)
	m.ReplyToName = headerValue(m.ReplyToName)
	return m
}

func headerValue(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}

// StubEmailSender is a no-op sender for testing or when email is disabled.
type StubEmailSender struct {
	logger *logging.Logger
}

// NewStubEmailSender creates a stub email sender that logs but doesn't send.
func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

// Send logs the email but doesn't actually send it.
func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	msg = msg.headerSafe()
	s.logger.Info("stub email sender: would send email", "to", msg.To, "subject", msg.Subject, "reply_to", msg.ReplyTo)
	return nil
}

var _ EmailSender = (*StubEmailSender)(nil)

package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/wolfman30/lead-relay/pkg/logging"
)

// SendGridSender sends emails via SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	BaseURL   string // optional host override, e.g. for tests
	FromEmail string
	FromName  string
}

// NewSendGridSender creates a new SendGrid email sender.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if logger == nil {
		logger = logging.Default()
	}
	client := sendgrid.NewSendClient(cfg.APIKey)
	if host := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); host != "" {
		client.BaseURL = host + "/v3/mail/send"
	}
	return &SendGridSender{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via SendGrid.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}
	msg = msg.headerSafe()

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = msg.Subject
	message.AddPersonalizations(personalization)
	// The body is user text; it only becomes an HTML part when a caller built one.
	message.AddContent(mail.NewContent("text/plain", msg.Body))
	if msg.HTML != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTML))
	}
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail(msg.ReplyToName, msg.ReplyTo))
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &ProviderError{Provider: "sendgrid", StatusCode: response.StatusCode, Body: response.Body}
	}

	s.logger.Debug("email sent via sendgrid", "to", msg.To, "status", response.StatusCode)
	return nil
}

var _ EmailSender = (*SendGridSender)(nil)

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/lead-relay/pkg/logging"
)

const (
	defaultMailjetBaseURL = "https://api.mailjet.com"
	mailjetSendPath       = "/v3.1/send"

	// maxProviderBody caps how much of a provider response is kept for logs.
	maxProviderBody = 64 << 10
)

// MailjetConfig holds configuration for the Mailjet Send API v3.1.
type MailjetConfig struct {
	APIKey    string
	SecretKey string
	BaseURL   string
	FromEmail string
	FromName  string
	// Timeout applies only when HTTPClient is nil. Zero leaves the call
	// bounded by the caller's context alone.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// MailjetSender sends emails via the Mailjet Send API v3.1.
type MailjetSender struct {
	apiKey     string
	secretKey  string
	sendURL    string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	logger     *logging.Logger
}

type mailjetAddress struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type mailjetMessage struct {
	From     mailjetAddress   `json:"From"`
	To       []mailjetAddress `json:"To"`
	Subject  string           `json:"Subject"`
	TextPart string           `json:"TextPart,omitempty"`
	HTMLPart string           `json:"HTMLPart,omitempty"`
	ReplyTo  *mailjetAddress  `json:"ReplyTo,omitempty"`
}

type mailjetSendRequest struct {
	Messages []mailjetMessage `json:"Messages"`
}

type mailjetSendResponse struct {
	Messages []struct {
		Status string `json:"Status"`
		To     []struct {
			Email       string `json:"Email"`
			MessageUUID string `json:"MessageUUID"`
		} `json:"To"`
	} `json:"Messages"`
}

// NewMailjetSender creates a new Mailjet email sender. Missing credentials are
// not rejected here; Mailjet answers 401 and Send reports a ProviderError.
func NewMailjetSender(cfg MailjetConfig, logger *logging.Logger) *MailjetSender {
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultMailjetBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &MailjetSender{
		apiKey:     cfg.APIKey,
		secretKey:  cfg.SecretKey,
		sendURL:    baseURL + mailjetSendPath,
		fromEmail:  cfg.FromEmail,
		fromName:   cfg.FromName,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Send issues exactly one POST to the Mailjet send endpoint.
func (s *MailjetSender) Send(ctx context.Context, msg EmailMessage) error {
	msg = msg.headerSafe()

	message := mailjetMessage{
		From:     mailjetAddress{Email: s.fromEmail, Name: s.fromName},
		To:       []mailjetAddress{{Email: msg.To, Name: msg.ToName}},
		Subject:  msg.Subject,
		TextPart: msg.Body,
		HTMLPart: msg.HTML,
	}
	if msg.ReplyTo != "" {
		message.ReplyTo = &mailjetAddress{Email: msg.ReplyTo, Name: msg.ReplyToName}
	}

	body, err := json.Marshal(mailjetSendRequest{Messages: []mailjetMessage{message}})
	if err != nil {
		return fmt.Errorf("notify: marshal mailjet payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build mailjet request: %w", err)
	}
	req.SetBasicAuth(s.apiKey, s.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: mailjet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
		if readErr != nil {
			return fmt.Errorf("notify: read mailjet error response: %w", readErr)
		}
		return &ProviderError{Provider: "mailjet", StatusCode: resp.StatusCode, Body: string(data)}
	}

	var out mailjetSendResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProviderBody)).Decode(&out); err != nil {
		s.logger.Debug("mailjet response not decoded", "error", err, "status", resp.StatusCode)
		return nil
	}
	for _, m := range out.Messages {
		for _, to := range m.To {
			s.logger.Debug("email accepted by mailjet", "status", m.Status, "to", to.Email, "message_uuid", to.MessageUUID)
		}
	}
	return nil
}

var _ EmailSender = (*MailjetSender)(nil)

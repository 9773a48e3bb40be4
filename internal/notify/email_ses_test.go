package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/wolfman30/lead-relay/pkg/logging"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("ses-123")}, nil
}

type statusError struct{ code int }

func (e statusError) Error() string       { return "operation error SES: SendEmail" }
func (e statusError) HTTPStatusCode() int { return e.code }

func TestSESSender_Send(t *testing.T) {
	client := &fakeSES{}
	sender := NewSESSender(client, SESConfig{FromEmail: "no-reply@example.com", FromName: "Leads"}, logging.Discard())

	if err := sender.Send(context.Background(), testMessage()); err != nil {
		t.Fatalf("send: %v", err)
	}

	in := client.input
	if got := aws.ToString(in.FromEmailAddress); got != `"Leads" <no-reply@example.com>` {
		t.Errorf("unexpected from %q", got)
	}
	if len(in.ReplyToAddresses) != 1 || !strings.Contains(in.ReplyToAddresses[0], "<ana@example.com>") {
		t.Errorf("unexpected reply-to %v", in.ReplyToAddresses)
	}
	if got := aws.ToString(in.Content.Simple.Subject.Data); got != "[LEAD] Pacote Gramado - Ana" {
		t.Errorf("unexpected subject %q", got)
	}
	if in.Content.Simple.Body.Html != nil {
		t.Errorf("expected no html part")
	}
}

func TestSESSender_ErrorClassification(t *testing.T) {
	client := &fakeSES{err: statusError{code: 400}}
	sender := NewSESSender(client, SESConfig{FromEmail: "no-reply@example.com"}, logging.Discard())

	var perr *ProviderError
	if err := sender.Send(context.Background(), testMessage()); !errors.As(err, &perr) || perr.StatusCode != 400 {
		t.Fatalf("expected ProviderError with status 400, got %v", err)
	}

	client.err = errors.New("dial tcp: lookup email.us-east-1.amazonaws.com: no such host")
	err := sender.Send(context.Background(), testMessage())
	if err == nil || errors.As(err, &perr) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestSESSender_NilClient(t *testing.T) {
	sender := NewSESSender(nil, SESConfig{}, nil)
	if err := sender.Send(context.Background(), testMessage()); err == nil {
		t.Fatal("expected error when client is nil")
	}
}

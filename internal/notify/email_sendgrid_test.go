package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wolfman30/lead-relay/pkg/logging"
)

func TestSendGridSender_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/mail/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sg-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var payload struct {
			ReplyTo struct {
				Email string `json:"email"`
			} `json:"reply_to"`
			Subject string `json:"subject"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if payload.ReplyTo.Email != "ana@example.com" {
			t.Errorf("unexpected reply_to %q", payload.ReplyTo.Email)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "sg-key",
		BaseURL:   server.URL,
		FromEmail: "no-reply@example.com",
		FromName:  "Leads",
	}, logging.Discard())

	if err := sender.Send(context.Background(), testMessage()); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestSendGridSender_PlainBodyIsNotHTML(t *testing.T) {
	type content struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}
	var got []content
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Content []content `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode body: %v", err)
		}
		got = payload.Content
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewSendGridSender(SendGridConfig{APIKey: "sg-key", BaseURL: server.URL}, logging.Discard())
	msg := testMessage()
	msg.Body = "Mensagem do Cliente: <img src=x onerror=alert(1)>\nsegunda linha"

	if err := sender.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only a text/plain part, got %+v", got)
	}
	if got[0].Type != "text/plain" || got[0].Value != msg.Body {
		t.Fatalf("unexpected content %+v", got[0])
	}
}

func TestSendGridSender_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"errors":[{"message":"forbidden"}]}`))
	}))
	defer server.Close()

	sender := NewSendGridSender(SendGridConfig{APIKey: "sg-key", BaseURL: server.URL}, logging.Discard())
	err := sender.Send(context.Background(), testMessage())

	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status %d", perr.StatusCode)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{
		client: nil,
	}

	err := sender.Send(context.Background(), testMessage())

	if err == nil {
		t.Error("expected error when client is nil")
	}
}

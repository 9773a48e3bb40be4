package leads

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestBuildEmail(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 7, 3, 0, time.UTC)
	sub := Submission{
		Name:    "Ana Souza",
		Email:   "ana@example.com",
		Phone:   "+55 54 99999-0000",
		Subject: "Pacote Gramado",
		Message: "Quero reservar em julho",
		Details: "2 adultos",
	}

	msg := BuildEmail(sub, Recipient{Email: "vendas@example.com", Name: "Time de Vendas"}, now)

	if msg.Subject != "[LEAD] Pacote Gramado - Ana Souza" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if msg.To != "vendas@example.com" || msg.ToName != "Time de Vendas" {
		t.Fatalf("unexpected recipient %q %q", msg.To, msg.ToName)
	}
	if msg.ReplyTo != "ana@example.com" || msg.ReplyToName != "Ana Souza" {
		t.Fatalf("unexpected reply-to %q %q", msg.ReplyTo, msg.ReplyToName)
	}

	want := []string{
		"Novo Lead Recebido: Pacote Gramado",
		"Nome: Ana Souza",
		"Email: ana@example.com",
		"Telefone/WhatsApp: +55 54 99999-0000",
		"Detalhes do Lead: 2 adultos",
		"Mensagem do Cliente: Quero reservar em julho",
		"Data/Hora do Envio: 05/03/2026, 09:07:03",
	}
	for _, line := range want {
		if !strings.Contains(msg.Body, line) {
			t.Errorf("body missing %q:\n%s", line, msg.Body)
		}
	}
}

func TestBuildEmailPlaceholders(t *testing.T) {
	sub := Submission{Name: "Ana", Email: "ana@example.com", Subject: "Dúvida"}

	msg := BuildEmail(sub, Recipient{Email: "vendas@example.com"}, time.Now())

	for _, line := range []string{
		"Telefone/WhatsApp: Não Informado",
		"Detalhes do Lead: N/A",
		"Mensagem do Cliente: N/A",
	} {
		if !strings.Contains(msg.Body, line) {
			t.Errorf("body missing %q:\n%s", line, msg.Body)
		}
	}
}

func TestBuildEmailDeterministic(t *testing.T) {
	now := time.Date(2026, time.October, 16, 18, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	sub := Submission{Name: "Ana", Email: "ana@example.com", Subject: "x"}
	to := Recipient{Email: "vendas@example.com"}

	if BuildEmail(sub, to, now) != BuildEmail(sub, to, now) {
		t.Fatal("same inputs must build the same message")
	}
}

func TestBuildEmailKeepsValuesAsSent(t *testing.T) {
	sub := Submission{Name: " Ana ", Email: "ana@example.com", Subject: "Pacote  Gramado", Message: "  oi\n"}

	msg := BuildEmail(sub, Recipient{Email: "vendas@example.com"}, time.Now())

	if want := "[LEAD] Pacote  Gramado -  Ana "; msg.Subject != want {
		t.Errorf("Subject = %q, want %q", msg.Subject, want)
	}
	for _, line := range []string{"Nome:  Ana \n", "Mensagem do Cliente:   oi\n\n"} {
		if !strings.Contains(msg.Body, line) {
			t.Errorf("body missing %q:\n%s", line, msg.Body)
		}
	}
}

func TestSubmissionDecodeNumericPhone(t *testing.T) {
	var sub Submission
	err := json.Unmarshal([]byte(`{"nome":"Ana","email":"a@b.com","assunto":"x","telefone":5554999990000,"detalhes":null,"mensagem":true}`), &sub)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if sub.Phone != "5554999990000" {
		t.Errorf("Phone = %q, want the literal digits", sub.Phone)
	}
	if sub.Details != "" || sub.Message != "" {
		t.Errorf("non-string optional values should decode empty, got %q and %q", sub.Details, sub.Message)
	}
	if sub.Name != "Ana" || sub.Subject != "x" {
		t.Errorf("required fields lost: %+v", sub)
	}
}

func TestSubmissionValidate(t *testing.T) {
	tests := []struct {
		name    string
		sub     Submission
		wantErr bool
	}{
		{"complete", Submission{Name: "Ana", Email: "ana@example.com", Subject: "x"}, false},
		{"missing name", Submission{Email: "ana@example.com", Subject: "x"}, true},
		{"whitespace name", Submission{Name: "   ", Email: "ana@example.com", Subject: "x"}, false},
		{"missing email", Submission{Name: "Ana", Subject: "x"}, true},
		{"missing subject", Submission{Name: "Ana", Email: "ana@example.com"}, true},
		{"optional fields absent", Submission{Name: "Ana", Email: "a@b.com", Subject: "x", Phone: ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

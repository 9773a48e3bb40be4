package leads

import (
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/lead-relay/internal/notify"
)

const (
	phonePlaceholder    = "Não Informado"
	optionalPlaceholder = "N/A"
	separator           = "-------------------------------------"

	// TimestampLayout renders dates the way pt-BR locales do.
	TimestampLayout = "02/01/2006, 15:04:05"
)

// Recipient is where relayed leads are delivered.
type Recipient struct {
	Email string
	Name  string
}

// BuildEmail turns a validated submission into the message sent to the sales
// inbox. It is a pure function of its inputs.
func BuildEmail(sub Submission, to Recipient, now time.Time) notify.EmailMessage {
	name, email, subject := sub.Name, sub.Email, sub.Subject

	var b strings.Builder
	fmt.Fprintf(&b, "Novo Lead Recebido: %s\n", subject)
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Nome: %s\n", name)
	fmt.Fprintf(&b, "Email: %s\n", email)
	fmt.Fprintf(&b, "Telefone/WhatsApp: %s\n", orDefault(sub.Phone, phonePlaceholder))
	fmt.Fprintf(&b, "Detalhes do Lead: %s\n", orDefault(sub.Details, optionalPlaceholder))
	fmt.Fprintf(&b, "Mensagem do Cliente: %s\n", orDefault(sub.Message, optionalPlaceholder))
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Data/Hora do Envio: %s\n", now.Format(TimestampLayout))

	return notify.EmailMessage{
		To:          to.Email,
		ToName:      to.Name,
		Subject:     fmt.Sprintf("[LEAD] %s - %s", subject, name),
		Body:        b.String(),
		ReplyTo:     email,
		ReplyToName: name,
	}
}

func orDefault(value Text, placeholder string) string {
	if value != "" {
		return string(value)
	}
	return placeholder
}

package leads

import (
	"bytes"
	"encoding/json"
)

// Submission is a lead-capture form submission. JSON keys follow the
// Portuguese field names the public form posts.
type Submission struct {
	Name    string `json:"nome"`
	Email   string `json:"email"`
	Phone   Text   `json:"telefone,omitempty"`
	Subject string `json:"assunto"`
	Message Text   `json:"mensagem,omitempty"`
	Details Text   `json:"detalhes,omitempty"`
}

// Validate reports ErrIncompleteSubmission when any required field is absent
// or empty. Whitespace-only values count as present.
func (s *Submission) Validate() error {
	if s.Name == "" || s.Email == "" || s.Subject == "" {
		return ErrIncompleteSubmission
	}
	return nil
}

// Text is an optional free-form field. Phone inputs often post numbers, so a
// JSON number is kept as its literal digits; null and other non-string values
// decode to empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case c == '-' || (c >= '0' && c <= '9'):
		*t = Text(data)
	default:
		*t = ""
	}
	return nil
}

// Response is the body returned to the caller for every outcome.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

package leads

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wolfman30/lead-relay/internal/notify"
	"github.com/wolfman30/lead-relay/internal/observability/metrics"
	"github.com/wolfman30/lead-relay/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Messages returned to the caller. The public form shows them verbatim.
const (
	MsgMethodNotAllowed = "Método não permitido."
	MsgIncomplete       = "Dados incompletos (nome, email, assunto são obrigatórios)."
	MsgSent             = "Lead capturado e email enviado com sucesso."
	MsgProviderError    = "Erro ao processar o envio de e-mail no servidor. Verifique o console Vercel."
	MsgTransportError   = "Erro interno de conexão. Tente novamente mais tarde."
)

const maxBodyBytes = 64 << 10

var relayTracer = otel.Tracer("leadrelay.internal.leads")

// Config holds the immutable settings the handler needs per request.
type Config struct {
	Recipient Recipient
	// Location is used to render the submission timestamp. Nil means time.Local.
	Location *time.Location
	// Provider labels metrics and spans, e.g. "mailjet".
	Provider string
}

// Handler relays lead submissions to the configured email provider.
type Handler struct {
	sender  notify.EmailSender
	cfg     Config
	logger  *logging.Logger
	metrics *metrics.LeadMetrics
	now     func() time.Time
}

// NewHandler creates a new leads handler
func NewHandler(sender notify.EmailSender, cfg Config, logger *logging.Logger, m *metrics.LeadMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Handler{
		sender:  sender,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// ServeHTTP validates the submission, sends exactly one email and maps the
// provider outcome to a JSON response. Nothing is retried.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.metrics.ObserveOutcome(metrics.OutcomeMethodNotAllowed)
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Message: MsgMethodNotAllowed})
		return
	}

	var sub Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&sub); err != nil {
		// A mistyped field leaves the rest of the decoded submission usable.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			sub = Submission{}
		}
		h.logger.Debug("lead body not fully decoded", "error", err)
	}

	if err := sub.Validate(); err != nil {
		h.metrics.ObserveOutcome(metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: MsgIncomplete})
		return
	}

	msg := BuildEmail(sub, h.cfg.Recipient, h.now().In(h.cfg.Location))

	ctx, span := relayTracer.Start(r.Context(), "leads.relay.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("leadrelay.email.provider", h.cfg.Provider))

	start := time.Now()
	err := h.sender.Send(ctx, msg)
	h.metrics.ObserveSendDuration(h.cfg.Provider, time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		var perr *notify.ProviderError
		if errors.As(err, &perr) {
			h.logger.Error("email provider rejected lead",
				"provider", perr.Provider,
				"status", perr.StatusCode,
				"body", perr.Body,
			)
			h.metrics.ObserveOutcome(metrics.OutcomeProviderError)
			writeJSON(w, http.StatusInternalServerError, Response{Success: false, Message: MsgProviderError})
			return
		}

		h.logger.Error("email provider call failed", "provider", h.cfg.Provider, "error", err)
		h.metrics.ObserveOutcome(metrics.OutcomeTransportError)
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Message: MsgTransportError})
		return
	}

	h.logger.Info("lead relayed", "provider", h.cfg.Provider, "subject", msg.Subject)
	h.metrics.ObserveOutcome(metrics.OutcomeSent)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: MsgSent})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Package mainconfig assembles the lead relay from configuration so the HTTP
// server and the Lambda entrypoint serve identical behavior.
package mainconfig

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wolfman30/lead-relay/internal/api/router"
	appconfig "github.com/wolfman30/lead-relay/internal/config"
	"github.com/wolfman30/lead-relay/internal/leads"
	"github.com/wolfman30/lead-relay/internal/notify"
	"github.com/wolfman30/lead-relay/internal/observability/metrics"
	"github.com/wolfman30/lead-relay/pkg/logging"
)

// NewEmailSender builds the sender selected by EMAIL_PROVIDER.
func NewEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	switch cfg.EmailProvider {
	case appconfig.ProviderMailjet:
		return notify.NewMailjetSender(notify.MailjetConfig{
			APIKey:    cfg.MailjetAPIKey,
			SecretKey: cfg.MailjetSecretKey,
			BaseURL:   cfg.MailjetBaseURL,
			FromEmail: cfg.SenderEmail,
			FromName:  cfg.SenderName,
			Timeout:   cfg.MailjetTimeout,
		}, logger), nil
	case appconfig.ProviderSendGrid:
		return notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SenderEmail,
			FromName:  cfg.SenderName,
		}, logger), nil
	case appconfig.ProviderSES:
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("mainconfig: load aws config: %w", err)
		}
		client := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
			if endpoint := strings.TrimSpace(cfg.AWSEndpointOverride); endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
			}
		})
		return notify.NewSESSender(client, notify.SESConfig{
			FromEmail: cfg.SenderEmail,
			FromName:  cfg.SenderName,
		}, logger), nil
	case appconfig.ProviderStub:
		return notify.NewStubEmailSender(logger), nil
	default:
		return nil, fmt.Errorf("mainconfig: unknown email provider %q", cfg.EmailProvider)
	}
}

// NewHandler validates cfg and returns the fully wired HTTP handler. Metrics
// register on reg; a nil reg uses the default prometheus registry.
func NewHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, reg *prometheus.Registry) (http.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	sender, err := NewEmailSender(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}

	leadsHandler := leads.NewHandler(sender, leads.Config{
		Recipient: leads.Recipient{
			Email: cfg.LeadsDestinationEmail,
			Name:  cfg.LeadsDestinationName,
		},
		Location: loc,
		Provider: cfg.EmailProvider,
	}, logger, metrics.NewLeadMetrics(registerer))

	routerCfg := &router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.MetricsEnabled {
		routerCfg.MetricsHandler = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	return router.New(routerCfg), nil
}

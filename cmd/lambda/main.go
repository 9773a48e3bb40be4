// Command lambda serves the lead relay behind API Gateway HTTP API (v2).
package main

import (
	"context"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wolfman30/lead-relay/cmd/mainconfig"
	appconfig "github.com/wolfman30/lead-relay/internal/config"
	"github.com/wolfman30/lead-relay/pkg/logging"
)

func newAdapter(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, reg *prometheus.Registry) (*httpadapter.HandlerAdapterV2, error) {
	handler, err := mainconfig.NewHandler(ctx, cfg, logger, reg)
	if err != nil {
		return nil, err
	}
	return httpadapter.NewV2(handler), nil
}

func main() {
	cfg := appconfig.Load()
	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	adapter, err := newAdapter(context.Background(), cfg, logger, nil)
	if err != nil {
		// Fail the cold start instead of relaying with broken credentials.
		logger.Error("invalid configuration", "error", err)
		panic(err)
	}

	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return adapter.ProxyWithContext(ctx, evt)
	})
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Email provider identifiers accepted in EMAIL_PROVIDER.
const (
	ProviderMailjet  = "mailjet"
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderStub     = "stub"
)

// ErrMissingConfig is returned by Validate when required settings are absent.
var ErrMissingConfig = errors.New("config: missing required settings")

// Config holds application configuration
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	EmailProvider string

	// Mailjet Send API v3.1
	MailjetAPIKey    string
	MailjetSecretKey string
	MailjetBaseURL   string
	MailjetTimeout   time.Duration

	// SendGrid fallback provider
	SendGridAPIKey string

	// AWS SES fallback provider
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Lead routing
	LeadsDestinationEmail string
	LeadsDestinationName  string
	SenderEmail           string
	SenderName            string
	LeadsTimezone         string

	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; real environment wins.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		EmailProvider: strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", ProviderMailjet))),

		MailjetAPIKey:    getEnv("MAILJET_API_KEY", ""),
		MailjetSecretKey: getEnv("MAILJET_SECRET_KEY", ""),
		MailjetBaseURL:   getEnv("MAILJET_BASE_URL", "https://api.mailjet.com"),
		MailjetTimeout:   getEnvAsDuration("MAILJET_TIMEOUT", 0),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		LeadsDestinationEmail: getEnv("DESTINO_EMAIL_LEADS", ""),
		LeadsDestinationName:  getEnv("DESTINO_NAME_LEADS", "Time de Vendas"),
		SenderEmail:           getEnv("SENDER_EMAIL", "no-reply@seu-dominio-autorizado.com"),
		SenderName:            getEnv("SENDER_NAME", "Rota Inesquecível - Leads"),
		LeadsTimezone:         getEnv("LEADS_TIMEZONE", "America/Sao_Paulo"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", false),
	}
}

// Validate reports every required setting that is missing for the selected
// email provider. The returned error wraps ErrMissingConfig.
func (c *Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	require("DESTINO_EMAIL_LEADS", c.LeadsDestinationEmail)
	require("SENDER_EMAIL", c.SenderEmail)

	switch c.EmailProvider {
	case ProviderMailjet:
		require("MAILJET_API_KEY", c.MailjetAPIKey)
		require("MAILJET_SECRET_KEY", c.MailjetSecretKey)
		require("MAILJET_BASE_URL", c.MailjetBaseURL)
	case ProviderSendGrid:
		require("SENDGRID_API_KEY", c.SendGridAPIKey)
	case ProviderSES:
		require("AWS_REGION", c.AWSRegion)
	case ProviderStub:
	default:
		return fmt.Errorf("config: unknown EMAIL_PROVIDER %q", c.EmailProvider)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves LeadsTimezone. An empty value means the host's local zone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.LeadsTimezone)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config: invalid LEADS_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

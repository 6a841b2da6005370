// Package telemetry wires OpenTelemetry tracing, metrics and log export.
// Every provider degrades to a no-op when its signal is disabled.
package telemetry

import (
	"fmt"
	"time"

	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ServiceVersion is reported as service.version on every signal
var ServiceVersion = "dev"

// Config holds the settings shared by all exporters
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool

	MetricsEnabled        bool
	MetricsExportInterval time.Duration
	LogsEnabled           bool
}

// ConfigFrom maps the service configuration onto telemetry settings.
// Metrics and logs export only when tracing export is enabled too.
func ConfigFrom(cfg config.TelemetryConfig) Config {
	return Config{
		Enabled:               cfg.Enabled,
		CollectorEndpoint:     cfg.CollectorEndpoint,
		SamplingRatio:         cfg.SamplingRatio,
		ServiceName:           cfg.ServiceName,
		Insecure:              cfg.Insecure,
		MetricsEnabled:        cfg.Enabled && cfg.MetricsEnabled,
		MetricsExportInterval: cfg.MetricsExportInterval,
		LogsEnabled:           cfg.Enabled && cfg.LogsEnabled,
	}
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

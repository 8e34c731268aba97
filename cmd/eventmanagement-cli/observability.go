package main

import (
	"context"
	"log/slog"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/cli"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell/config"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore/oteladapters"
)

// setupObservability always logs through logger. With OpenTelemetry enabled, metrics and traces are exported
// via OTLP and log records carry the IDs of the current span.
func setupObservability(ctx context.Context, cfg *Application, logger *slog.Logger) (cli.Observability, func() error, error) {
	obs := cli.Observability{Logger: logger}
	noop := func() error { return nil }

	if !cfg.Observability.Enabled {
		return obs, noop, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, config.ObservabilityConfig{
		ServiceName:    applicationName,
		ServiceVersion: version,
		TraceEndpoint:  cfg.Observability.TraceEndpoint,
		MetricEndpoint: cfg.Observability.MetricEndpoint,
	})
	if err != nil {
		return cli.Observability{}, noop, err
	}

	obs.Metrics = oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(applicationName))
	obs.Tracing = oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(applicationName))
	obs.ContextualLogger = oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler())

	logger.Info("opentelemetry enabled",
		"trace_endpoint", cfg.Observability.TraceEndpoint,
		"metric_endpoint", cfg.Observability.MetricEndpoint)

	return obs, providers.Shutdown, nil
}

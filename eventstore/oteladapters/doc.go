// Package oteladapters implements the eventstore observability ports with OpenTelemetry.
//
// The command and query handlers as well as the engines only know eventstore.Logger, ContextualLogger,
// MetricsCollector and TracingCollector. Wiring these adapters connects them to an OTLP pipeline.
package oteladapters

package shell

// QueryDependencies is embedded by the query handlers of all feature slices.
// It holds what a handler exposes to the wrappers around it.
type QueryDependencies struct {
	eventStore       QueriesEvents
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
	logger           Logger
}

// QueryOption configures QueryDependencies.
type QueryOption func(*QueryDependencies)

func NewQueryDependencies(eventStore QueriesEvents, opts ...QueryOption) QueryDependencies {
	d := QueryDependencies{eventStore: eventStore}

	for _, opt := range opts {
		opt(&d)
	}

	return d
}

func WithQueryMetricsCollector(collector MetricsCollector) QueryOption {
	return func(d *QueryDependencies) { d.metricsCollector = collector }
}

func WithQueryTracingCollector(collector TracingCollector) QueryOption {
	return func(d *QueryDependencies) { d.tracingCollector = collector }
}

func WithQueryContextualLogger(logger ContextualLogger) QueryOption {
	return func(d *QueryDependencies) { d.contextualLogger = logger }
}

func WithQueryLogger(logger Logger) QueryOption {
	return func(d *QueryDependencies) { d.logger = logger }
}

func (d QueryDependencies) ExposeEventStore() QueriesEvents {
	return d.eventStore
}

func (d QueryDependencies) ExposeMetricsCollector() MetricsCollector {
	return d.metricsCollector
}

func (d QueryDependencies) ExposeTracingCollector() TracingCollector {
	return d.tracingCollector
}

func (d QueryDependencies) ExposeContextualLogger() ContextualLogger {
	return d.contextualLogger
}

func (d QueryDependencies) ExposeLogger() Logger {
	return d.logger
}

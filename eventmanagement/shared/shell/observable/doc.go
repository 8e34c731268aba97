// Package observable decorates command and query handlers with metrics, tracing and logging.
//
// The core handlers stay free of observability code. A wrapper reads the command or query type
// from the zero value of its type parameter, so it needs no configuration besides the collectors:
//
//	handler, err := observable.NewCommandWrapper[scheduleevent.Command](
//		coreHandler,
//		observable.WithCommandMetrics[scheduleevent.Command](metrics),
//		observable.WithCommandContextualLogging[scheduleevent.Command](logger),
//	)
//
// Unset collectors are skipped.
package observable

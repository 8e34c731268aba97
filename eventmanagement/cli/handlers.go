package cli

import (
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/changeregistrationstatus"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/registerattendee"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/eventattendees"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/eventdetails"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/listevents"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/totalrevenue"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell/observable"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell/snapshot"
)

// Observability holds the optional collectors every handler is instrumented with, nil fields are skipped.
type Observability struct {
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
	ContextualLogger shell.ContextualLogger
	Logger           shell.Logger
}

// Handlers are the instrumented feature handlers over one event store.
type Handlers struct {
	ScheduleEvent            shell.CoreCommandHandler[scheduleevent.Command]
	RegisterAttendee         shell.CoreCommandHandler[registerattendee.Command]
	ChangeRegistrationStatus shell.CoreCommandHandler[changeregistrationstatus.Command]
	ListEvents               shell.CoreQueryHandler[listevents.Query, listevents.ScheduledEvents]
	EventDetails             shell.CoreQueryHandler[eventdetails.Query, eventdetails.EventDetails]
	EventAttendees           shell.CoreQueryHandler[eventattendees.Query, eventattendees.EventAttendees]
	TotalRevenue             shell.CoreQueryHandler[totalrevenue.Query, totalrevenue.Revenue]
}

// NewHandlers wires all feature slices to eventStore. ListEvents reads through snapshots when
// eventStore can persist them.
func NewHandlers(eventStore shell.EventStore, obs Observability, retryOptions ...shell.RetryOption) (Handlers, error) {
	var (
		h   Handlers
		err error
	)

	if h.ScheduleEvent, err = observable.NewCommandWrapper[scheduleevent.Command](
		scheduleevent.NewCommandHandler(eventStore, scheduleevent.WithRetryOptions(retryOptions...)),
		commandOptions[scheduleevent.Command](obs)...,
	); err != nil {
		return Handlers{}, err
	}

	if h.RegisterAttendee, err = observable.NewCommandWrapper[registerattendee.Command](
		registerattendee.NewCommandHandler(eventStore, registerattendee.WithRetryOptions(retryOptions...)),
		commandOptions[registerattendee.Command](obs)...,
	); err != nil {
		return Handlers{}, err
	}

	if h.ChangeRegistrationStatus, err = observable.NewCommandWrapper[changeregistrationstatus.Command](
		changeregistrationstatus.NewCommandHandler(eventStore, changeregistrationstatus.WithRetryOptions(retryOptions...)),
		commandOptions[changeregistrationstatus.Command](obs)...,
	); err != nil {
		return Handlers{}, err
	}

	if h.ListEvents, err = newListEventsHandler(eventStore, obs); err != nil {
		return Handlers{}, err
	}

	if h.EventDetails, err = observable.NewQueryWrapper[eventdetails.Query, eventdetails.EventDetails](
		eventdetails.NewQueryHandler(eventStore),
		queryOptions[eventdetails.Query, eventdetails.EventDetails](obs)...,
	); err != nil {
		return Handlers{}, err
	}

	if h.EventAttendees, err = observable.NewQueryWrapper[eventattendees.Query, eventattendees.EventAttendees](
		eventattendees.NewQueryHandler(eventStore),
		queryOptions[eventattendees.Query, eventattendees.EventAttendees](obs)...,
	); err != nil {
		return Handlers{}, err
	}

	if h.TotalRevenue, err = observable.NewQueryWrapper[totalrevenue.Query, totalrevenue.Revenue](
		totalrevenue.NewQueryHandler(eventStore),
		queryOptions[totalrevenue.Query, totalrevenue.Revenue](obs)...,
	); err != nil {
		return Handlers{}, err
	}

	return h, nil
}

func newListEventsHandler(
	eventStore shell.EventStore,
	obs Observability,
) (shell.CoreQueryHandler[listevents.Query, listevents.ScheduledEvents], error) {

	base := listevents.NewQueryHandler(eventStore,
		shell.WithQueryMetricsCollector(obs.Metrics),
		shell.WithQueryTracingCollector(obs.Tracing),
		shell.WithQueryContextualLogger(obs.ContextualLogger),
		shell.WithQueryLogger(obs.Logger),
	)

	if _, ok := eventStore.(shell.HandlesSnapshots); ok {
		return snapshot.NewWrapper[listevents.Query, listevents.ScheduledEvents](base, listevents.Project, listevents.BuildEventFilterFor)
	}

	return observable.NewQueryWrapper[listevents.Query, listevents.ScheduledEvents](
		base,
		queryOptions[listevents.Query, listevents.ScheduledEvents](obs)...,
	)
}

func commandOptions[C shell.Command](obs Observability) []observable.CommandOption[C] {
	return []observable.CommandOption[C]{
		observable.WithCommandMetrics[C](obs.Metrics),
		observable.WithCommandTracing[C](obs.Tracing),
		observable.WithCommandContextualLogging[C](obs.ContextualLogger),
		observable.WithCommandLogging[C](obs.Logger),
	}
}

func queryOptions[Q shell.Query, R shell.QueryResult](obs Observability) []observable.QueryOption[Q, R] {
	return []observable.QueryOption[Q, R]{
		observable.WithQueryMetrics[Q, R](obs.Metrics),
		observable.WithQueryTracing[Q, R](obs.Tracing),
		observable.WithQueryContextualLogging[Q, R](obs.ContextualLogger),
		observable.WithQueryLogging[Q, R](obs.Logger),
	}
}

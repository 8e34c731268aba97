package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/common/completion"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/common/operations"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/registerattendee"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/listevents"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/totalrevenue"
)

// DemoOptions configure RunDemo. Zero values fall back to a 100 seat concert with a single attendee.
type DemoOptions struct {
	Capacity       int
	ExtraAttendees int
	Parallelism    int
	Currency       currency.Unit
	Now            func() time.Time
}

// DemoResult summarizes one demo run.
type DemoResult struct {
	EventID    domain.EventID
	Registered []string
	Failure    error
	Revenue    totalrevenue.Revenue
	Upcoming   listevents.ScheduledEvents
}

// RunDemo schedules the "Rock Night" concert, registers the attendees concurrently in one task scope,
// and prints the revenue and the events of the next 24 hours.
// A failed registration cancels the pending ones and is reported, it does not fail the demo.
func RunDemo(ctx context.Context, handlers Handlers, out io.Writer, options DemoOptions) (DemoResult, error) {
	options = options.withDefaults()
	now := options.Now()

	concert, err := demoConcert(now, options)
	if err != nil {
		return DemoResult{}, err
	}

	if _, err = handlers.ScheduleEvent.Handle(ctx, scheduleevent.BuildCommand(concert, now)); err != nil {
		return DemoResult{}, err
	}

	result := DemoResult{EventID: concert.ID()}

	var mu sync.Mutex
	scope := operations.NewTaskScope[domain.Attendee](
		ctx,
		"RegisterAttendee",
		operations.NonTransactional{},
		completion.HandlerFuncs[domain.Attendee]{
			Success: func(attendee domain.Attendee) {
				mu.Lock()
				defer mu.Unlock()

				result.Registered = append(result.Registered, attendee.Name)
				_, _ = fmt.Fprintf(out, "Registration successful: %s <%s> for %s\n", attendee.Name, attendee.Email, concert.Name())
			},
			Failure: func(err error) {
				_, _ = fmt.Fprintf(out, "Registration failed: %v\n", err)
			},
		},
		operations.WithLimit(options.Parallelism),
	)

	for _, attendee := range demoAttendees(options.ExtraAttendees) {
		scope.Fork(func(ctx context.Context) completion.OperationResult[domain.Attendee] {
			command := registerattendee.BuildCommand(concert.ID(), uuid.New(), attendee, options.Now())
			if _, err := handlers.RegisterAttendee.Handle(ctx, command); err != nil {
				return completion.Failure[domain.Attendee](err)
			}

			return completion.Success(attendee)
		})
	}

	result.Failure = scope.Join()
	scope.Close()

	if err = ctx.Err(); err != nil {
		return result, err
	}

	if result.Revenue, err = handlers.TotalRevenue.Handle(ctx, totalrevenue.BuildQuery()); err != nil {
		return result, err
	}

	_, _ = fmt.Fprintf(out, "Total revenue: %s\n", result.Revenue.Total)

	upcomingQuery := listevents.BuildFilteredQuery(0, now, now.Add(24*time.Hour))
	if result.Upcoming, err = handlers.ListEvents.Handle(ctx, upcomingQuery); err != nil {
		return result, err
	}

	names := make([]string, 0, result.Upcoming.Count)
	for _, summary := range result.Upcoming.Events {
		names = append(names, fmt.Sprintf("%s (%s)", summary.Name, summary.Kind))
	}

	_, _ = fmt.Fprintf(out, "Upcoming events: [%s]\n", strings.Join(names, ", "))

	return result, nil
}

func (o DemoOptions) withDefaults() DemoOptions {
	if o.Capacity <= 0 {
		o.Capacity = 100
	}

	if o.Parallelism <= 0 {
		o.Parallelism = 4
	}

	if o.Currency == (currency.Unit{}) {
		o.Currency = domain.DefaultCurrency
	}

	if o.Now == nil {
		o.Now = time.Now
	}

	return o
}

func demoConcert(now time.Time, options DemoOptions) (domain.Concert, error) {
	ticketPrice, err := domain.NewMoney(decimal.RequireFromString("50.00"), options.Currency)
	if err != nil {
		return domain.Concert{}, err
	}

	details := domain.EventDetails{
		ID:           domain.GenerateEventID(),
		Name:         "Rock Night",
		StartTime:    now.Add(time.Hour),
		EndTime:      now.Add(3 * time.Hour),
		Location:     domain.Location{Name: "Arena", Address: "123 Main St"},
		MaxAttendees: options.Capacity,
	}

	return domain.NewConcert(details, "The Band", "Rock", ticketPrice)
}

func demoAttendees(extra int) []domain.Attendee {
	attendees := []domain.Attendee{
		{ID: uuid.New(), Name: "Jane Doe", Email: "jane@example.com", Phone: "555-1234"},
	}

	for i := 1; i <= extra; i++ {
		attendees = append(attendees, domain.Attendee{
			ID:    uuid.New(),
			Name:  fmt.Sprintf("Attendee-%d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
			Phone: fmt.Sprintf("555-%04d", i),
		})
	}

	return attendees
}

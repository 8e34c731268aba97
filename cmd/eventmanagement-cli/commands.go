package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/catalog"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/cli"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/common/persistence"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/eventattendees"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/eventdetails"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/listevents"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/totalrevenue"
)

func newListEventsCommand(a *app) *cobra.Command {
	var kind, from, until string

	cmd := &cobra.Command{
		Use:   "list-events",
		Short: "list the scheduled events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := a.listEventsQuery(kind, from, until)
			if err != nil {
				return err
			}

			events, err := a.handlers.ListEvents.Handle(cmd.Context(), query)
			if err != nil {
				return err
			}

			if events.Count == 0 {
				cmd.Println("No events available.")
				return nil
			}

			cli.RenderEventTable(cmd.OutOrStdout(), events, a.cfg.location)

			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only events of this kind (concert, conference, exhibition, workshop)")
	cmd.Flags().StringVar(&from, "from", "", "only events starting at or after (yyyy-MM-dd HH:mm)")
	cmd.Flags().StringVar(&until, "until", "", "only events ending at or before (yyyy-MM-dd HH:mm)")

	return cmd
}

func (a *app) listEventsQuery(kind, from, until string) (listevents.Query, error) {
	var (
		query listevents.Query
		err   error
	)

	if kind != "" {
		if query.Kind, err = domain.ParseEventKind(kind); err != nil {
			return listevents.Query{}, fmt.Errorf("--kind %q: %w", kind, err)
		}
	}

	if query.From, err = a.parseOptionalTime("--from", from); err != nil {
		return listevents.Query{}, err
	}

	if query.Until, err = a.parseOptionalTime("--until", until); err != nil {
		return listevents.Query{}, err
	}

	return listevents.BuildFilteredQuery(query.Kind, query.From, query.Until), nil
}

func (a *app) parseOptionalTime(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	t, err := time.ParseInLocation(domain.DateTimeLayout, value, a.cfg.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: use yyyy-MM-dd HH:mm (e.g., 2025-04-15 14:30)", flag, value)
	}

	return t, nil
}

func (a *app) resolveEvent(cmd *cobra.Command, ref string) (listevents.EventSummary, domain.EventID, error) {
	summary, err := cli.ResolveEvent(cmd.Context(), a.handlers.ListEvents, ref)
	if err != nil {
		return listevents.EventSummary{}, domain.EventID{}, err
	}

	eventID, err := domain.EventIDFrom(summary.EventID)

	return summary, eventID, err
}

func newEventInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "event-info <index|id>",
		Short: "show all details of one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, eventID, err := a.resolveEvent(cmd, args[0])
			if err != nil {
				return err
			}

			details, err := a.handlers.EventDetails.Handle(cmd.Context(), eventdetails.BuildQuery(eventID))
			if err != nil {
				return err
			}

			if !details.Found() {
				return cli.ErrEventNotFound
			}

			cmd.Println("Event Information:")
			cli.RenderEventInfo(cmd.OutOrStdout(), details, a.cfg.location)

			return nil
		},
	}
}

func newAttendeesCommand(a *app) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "attendees <index|id>",
		Short: "list the registrations of one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, eventID, err := a.resolveEvent(cmd, args[0])
			if err != nil {
				return err
			}

			query := eventattendees.BuildQuery(eventID)
			query.ActiveOnly = activeOnly

			attendees, err := a.handlers.EventAttendees.Handle(cmd.Context(), query)
			if err != nil {
				return err
			}

			if attendees.Count == 0 {
				cmd.Printf("No attendees registered for %s.\n", summary.Name)
				return nil
			}

			cmd.Printf("Attendees for %s:\n", summary.Name)
			cli.RenderAttendeeTable(cmd.OutOrStdout(), attendees, a.cfg.location)

			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "leave out cancelled registrations")

	return cmd
}

func newRevenueCommand(a *app) *cobra.Command {
	var eventRef string

	cmd := &cobra.Command{
		Use:   "revenue",
		Short: "show the revenue of confirmed and attended registrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := totalrevenue.BuildQuery()

			if eventRef != "" {
				_, eventID, err := a.resolveEvent(cmd, eventRef)
				if err != nil {
					return err
				}

				query = totalrevenue.BuildQueryForEvent(eventID)
			}

			revenue, err := a.handlers.TotalRevenue.Handle(cmd.Context(), query)
			if err != nil {
				return err
			}

			cmd.Println(cli.RevenueLine(revenue))

			return nil
		},
	}

	cmd.Flags().StringVar(&eventRef, "event", "", "only this event (index or ID)")

	return cmd
}

func newImportCommand(a *app) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "import <catalog.hcl>",
		Short: "schedule all events of an HCL catalog, importing it again is a no-op",
		Long: `Schedules every event of the catalog. With the sqlite store the whole catalog is imported
in one transaction unless --keep-going is set, which schedules entry by entry and reports failed entries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}

			var report catalog.Report
			if a.store.sqlite != nil && !keepGoing {
				report, err = a.importAtomically(cmd, c)
			} else {
				report, err = catalog.Import(cmd.Context(), a.handlers.ScheduleEvent, c, time.Now())
			}

			cmd.Printf("Scheduled: %d, Unchanged: %d, Failed: %d\n", len(report.Scheduled), len(report.Unchanged), len(report.Failed))
			for key, failure := range report.Failed {
				cmd.Printf("  %s: %v\n", key, failure)
			}

			if err != nil {
				return err
			}

			return report.Err()
		},
	}

	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "import entry by entry instead of all or nothing")

	return cmd
}

func (a *app) importAtomically(cmd *cobra.Command, c catalog.Catalog) (catalog.Report, error) {
	txManager, err := persistence.NewTransactionManager(a.store.sqlite.DB())
	if err != nil {
		return catalog.Report{}, err
	}

	defer func() { _ = txManager.Close() }()

	schedulerFor := func(tx *sql.Tx) catalog.Scheduler {
		return scheduleevent.NewCommandHandler(a.store.sqlite.WithTx(tx))
	}

	report, err := catalog.ImportAtomically(cmd.Context(), txManager, schedulerFor, c, time.Now())
	if err != nil {
		return report, err
	}

	a.logger.Info("catalog imported", "scheduled", len(report.Scheduled), "unchanged", len(report.Unchanged))

	return report, nil
}

func newDemoCommand(a *app) *cobra.Command {
	var options cli.DemoOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "schedule a concert, register attendees concurrently and report the revenue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options.Currency = a.cfg.currencyUnit

			_, err := cli.RunDemo(cmd.Context(), a.handlers, cmd.OutOrStdout(), options)

			return err
		},
	}

	cmd.Flags().IntVar(&options.Capacity, "capacity", 100, "concert capacity")
	cmd.Flags().IntVar(&options.ExtraAttendees, "attendees", 0, "attendees registering next to Jane Doe")
	cmd.Flags().IntVar(&options.Parallelism, "parallelism", 4, "registrations running at the same time")

	return cmd
}

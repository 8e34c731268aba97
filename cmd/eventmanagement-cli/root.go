package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/cli"
)

const annotationNoStore = "no-store"

// app carries what the commands share. It is filled by the persistent pre-run of the root command.
type app struct {
	v          *viper.Viper
	configPath string

	cfg      *Application
	logger   *slog.Logger
	obs      cli.Observability
	store    storeHandle
	handlers cli.Handlers
	closers  []func() error
}

// execute runs the command line args and releases everything set up for it, also when the command failed.
func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	root, a := newRootCommand(in, out, errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	return errors.Join(err, a.tearDown())
}

func newRootCommand(in io.Reader, out, errOut io.Writer) (*cobra.Command, *app) {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   applicationName + "-cli",
		Short: "Event Organizer: schedule events, register attendees, report revenue",
		Long: `Without a subcommand an interactive menu session is started.
The subcommands run a single action against the same event store.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setUp(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := cli.NewSession(a.handlers, cmd.InOrStdin(), cmd.OutOrStdout(),
				cli.WithCurrency(a.cfg.currencyUnit),
				cli.WithLocation(a.cfg.location),
				cli.WithPalette(cli.NewPalette(a.cfg.Color)),
			)

			return session.Run(cmd.Context())
		},
	}

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "application config file")
	flags.String("store", storeSQLite, "event store (available=[memory, sqlite, postgres])")
	flags.String("sqlite-path", "", "sqlite database file (default: events.db in the XDG data directory)")
	flags.String("postgres-adapter", adapterPGX, "postgres adapter (available=[pgx, sql, sqlx])")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("currency", "USD", "ISO 4217 currency of new event fees")
	flags.String("timezone", "Local", "IANA time zone dates are read and shown in")
	flags.Bool("color", false, "color outcome messages")
	flags.Bool("observability", false, "export metrics and traces via OTLP")

	a.bindFlags(root)

	root.AddCommand(
		newListEventsCommand(a),
		newEventInfoCommand(a),
		newAttendeesCommand(a),
		newRevenueCommand(a),
		newImportCommand(a),
		newDemoCommand(a),
		newVersionCommand(),
	)

	return root, a
}

func (a *app) bindFlags(root *cobra.Command) {
	for key, flag := range map[string]string{
		"store":                 "store",
		"sqlite.path":           "sqlite-path",
		"postgres.adapter":      "postgres-adapter",
		"log.level":             "log-level",
		"currency":              "currency",
		"timezone":              "timezone",
		"color":                 "color",
		"observability.enabled": "observability",
	} {
		if err := a.v.BindPFlag(key, root.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func (a *app) setUp(cmd *cobra.Command) error {
	if cmd.Annotations[annotationNoStore] == "true" {
		return nil
	}

	cfg, err := LoadApplicationConfig(a.v, a.configPath)
	if err != nil {
		return err
	}

	a.cfg = cfg

	logger, closeLog, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.logger = logger
	a.closers = append(a.closers, closeLog)

	obs, shutdown, err := setupObservability(cmd.Context(), cfg, logger)
	if err != nil {
		return errors.Join(err, a.tearDown())
	}

	a.obs = obs
	a.closers = append(a.closers, shutdown)

	if a.store, err = openStore(cmd.Context(), cfg, obs); err != nil {
		return errors.Join(err, a.tearDown())
	}

	a.closers = append(a.closers, a.store.close)

	if a.handlers, err = cli.NewHandlers(a.store.eventStore, obs); err != nil {
		return errors.Join(err, a.tearDown())
	}

	logger.Debug("event store opened", "store", cfg.Store, "config", cfg.ConfigPath)

	return nil
}

// tearDown runs the closers in reverse order of their registration.
func (a *app) tearDown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	a.closers = nil

	return errors.Join(errs...)
}

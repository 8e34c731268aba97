package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
)

// ErrImportRolledBack means an atomic import failed and nothing of it was kept.
var ErrImportRolledBack = errors.New("import rolled back")

// Scheduler is what the import needs from the scheduleevent command handler.
type Scheduler interface {
	Handle(ctx context.Context, command scheduleevent.Command) (shell.HandlerResult, error)
}

// Report summarizes an import. Failed holds one error per entry that could not be scheduled.
type Report struct {
	Scheduled []string
	Unchanged []string
	Failed    map[string]error
}

// Err joins all entry errors, nil if every entry was scheduled or unchanged.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Failed))
	for key, err := range r.Failed {
		errs = append(errs, fmt.Errorf("%s: %w", key, err))
	}

	return errors.Join(errs...)
}

// Import schedules every entry of catalog. It keeps going after business errors and stops
// when ctx is done.
func Import(ctx context.Context, scheduler Scheduler, catalog Catalog, now time.Time) (Report, error) {
	report := Report{Failed: make(map[string]error)}

	for _, entry := range catalog.Entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := scheduler.Handle(ctx, scheduleevent.BuildCommand(entry.Event, now))
		switch {
		case err != nil && (shell.IsCancellationError(err) || shell.IsTimeoutError(err)):
			return report, err
		case err != nil:
			report.Failed[entry.Key] = err
		case result.Idempotent:
			report.Unchanged = append(report.Unchanged, entry.Key)
		default:
			report.Scheduled = append(report.Scheduled, entry.Key)
		}
	}

	return report, nil
}

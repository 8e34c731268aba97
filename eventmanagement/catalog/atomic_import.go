package catalog

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/common/completion"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/common/operations"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/common/persistence"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
)

// SchedulerFactory builds a Scheduler whose event store runs inside tx.
type SchedulerFactory func(tx *sql.Tx) Scheduler

type outcome struct {
	key       string
	unchanged bool
}

// ImportAtomically schedules every entry of catalog in one transaction: either all entries are
// scheduled (or unchanged) and committed, or the first failing entry rolls the whole import back.
// The entries are scheduled one after the other because they share the transaction.
func ImportAtomically(
	ctx context.Context,
	txManager *persistence.TransactionManager,
	schedulerFor SchedulerFactory,
	catalog Catalog,
	now time.Time,
) (Report, error) {

	if err := txManager.Begin(ctx); err != nil {
		return Report{}, err
	}

	defer func() { _ = txManager.RollbackIfActive() }()

	scheduler := schedulerFor(txManager.Tx())
	report := Report{Failed: make(map[string]error)}

	var mu sync.Mutex
	scope := operations.NewTaskScope[outcome](
		ctx,
		"ImportCatalog",
		operations.Transactional{TransactionManager: txManager},
		completion.HandlerFuncs[outcome]{
			Success: func(o outcome) {
				mu.Lock()
				defer mu.Unlock()

				if o.unchanged {
					report.Unchanged = append(report.Unchanged, o.key)
					return
				}

				report.Scheduled = append(report.Scheduled, o.key)
			},
		},
		operations.WithLimit(1),
	)

	for _, entry := range catalog.Entries {
		scope.Fork(func(ctx context.Context) completion.OperationResult[outcome] {
			result, err := scheduler.Handle(ctx, scheduleevent.BuildCommand(entry.Event, now))
			if err != nil {
				mu.Lock()
				report.Failed[entry.Key] = err
				mu.Unlock()

				return completion.Failure[outcome](err)
			}

			return completion.Success(outcome{key: entry.Key, unchanged: result.Idempotent})
		})
	}

	err := scope.Join()
	scope.Close()

	if err != nil {
		return Report{Failed: report.Failed}, errors.Join(ErrImportRolledBack, err)
	}

	if err = txManager.Commit(); err != nil {
		return Report{}, err
	}

	return report, nil
}

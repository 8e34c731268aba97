package operations

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/common/completion"
)

var ErrTaskPanicked = errors.New("task panicked")

// Task is one unit of work forked into a TaskScope. It should stop early when ctx is canceled.
type Task[T any] func(ctx context.Context) completion.OperationResult[T]

// TaskScope runs forked tasks concurrently and treats them as one operation:
// the first failure notifies the handler once, rolls back the transaction of a Transactional context,
// and cancels the context of the remaining tasks. Successes reach the handler one at a time.
type TaskScope[T any] struct {
	name     string
	opCtx    OperationContext
	handler  completion.TaskCompletionHandler[T]
	group    *errgroup.Group
	ctx      context.Context
	mu       sync.Mutex
	failure  error
	shutdown sync.Once
}

// ScopeOption configures a TaskScope.
type ScopeOption func(*scopeConfig)

type scopeConfig struct {
	limit int
}

// WithLimit bounds the number of tasks running at the same time, n <= 0 means no limit.
func WithLimit(n int) ScopeOption {
	return func(c *scopeConfig) {
		c.limit = n
	}
}

func NewTaskScope[T any](
	ctx context.Context,
	name string,
	opCtx OperationContext,
	handler completion.TaskCompletionHandler[T],
	options ...ScopeOption,
) *TaskScope[T] {

	cfg := scopeConfig{}
	for _, option := range options {
		option(&cfg)
	}

	if opCtx == nil {
		opCtx = NonTransactional{}
	}

	if handler == nil {
		handler = completion.HandlerFuncs[T]{}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if cfg.limit > 0 {
		group.SetLimit(cfg.limit)
	}

	return &TaskScope[T]{
		name:    name,
		opCtx:   opCtx,
		handler: handler,
		group:   group,
		ctx:     groupCtx,
	}
}

func (s *TaskScope[T]) Name() string {
	return s.name
}

// Context is canceled after the first failure.
func (s *TaskScope[T]) Context() context.Context {
	return s.ctx
}

// Fork starts task. With a limit set, Fork blocks until a slot is free.
// Tasks forked after a failure are skipped.
func (s *TaskScope[T]) Fork(task Task[T]) {
	s.group.Go(func() (err error) {
		if err := s.ctx.Err(); err != nil {
			return err
		}

		defer func() {
			if recovered := recover(); recovered != nil {
				err = fmt.Errorf("%w in scope %s: %v", ErrTaskPanicked, s.name, recovered)
				s.fail(err)
			}
		}()

		value, err := task(s.ctx).Get()
		if err != nil {
			s.fail(err)
			return err
		}

		s.succeed(value)

		return nil
	})
}

// Join waits for all forked tasks and returns the first failure. The scope context is canceled afterwards,
// so Join is called once, after the last Fork.
func (s *TaskScope[T]) Join() error {
	return s.group.Wait()
}

// Err returns the first failure so far.
func (s *TaskScope[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.failure
}

// Close waits for running tasks and notifies OnShutdown, only the first call has an effect.
func (s *TaskScope[T]) Close() {
	s.shutdown.Do(func() {
		_ = s.group.Wait()
		s.handler.OnShutdown()
	})
}

func (s *TaskScope[T]) succeed(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failure != nil {
		return
	}

	s.handler.OnSuccess(value)
}

func (s *TaskScope[T]) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failure != nil {
		return
	}

	s.failure = err

	if tx, ok := s.opCtx.(Transactional); ok && tx.TransactionManager != nil {
		if rollbackErr := tx.TransactionManager.RollbackIfActive(); rollbackErr != nil {
			s.failure = errors.Join(err, rollbackErr)
		}
	}

	s.handler.OnFailure(s.failure)
}

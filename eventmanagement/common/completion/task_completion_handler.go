package completion

// TaskCompletionHandler is notified about the results of the tasks of a scope and about its shutdown.
type TaskCompletionHandler[T any] interface {
	OnSuccess(value T)
	OnFailure(err error)
	OnShutdown()
}

// HandlerFuncs adapts plain functions to a TaskCompletionHandler, nil functions are skipped.
type HandlerFuncs[T any] struct {
	Success  func(value T)
	Failure  func(err error)
	Shutdown func()
}

func (h HandlerFuncs[T]) OnSuccess(value T) {
	if h.Success != nil {
		h.Success(value)
	}
}

func (h HandlerFuncs[T]) OnFailure(err error) {
	if h.Failure != nil {
		h.Failure(err)
	}
}

func (h HandlerFuncs[T]) OnShutdown() {
	if h.Shutdown != nil {
		h.Shutdown()
	}
}

// AndThen returns a handler calling h first and next second.
func (h HandlerFuncs[T]) AndThen(next TaskCompletionHandler[T]) TaskCompletionHandler[T] {
	return AndThen[T](h, next)
}

type chainedHandler[T any] struct {
	first TaskCompletionHandler[T]
	next  TaskCompletionHandler[T]
}

// AndThen composes two handlers, every callback reaches first and then next.
func AndThen[T any](first, next TaskCompletionHandler[T]) TaskCompletionHandler[T] {
	return chainedHandler[T]{first: first, next: next}
}

func (c chainedHandler[T]) OnSuccess(value T) {
	c.first.OnSuccess(value)
	c.next.OnSuccess(value)
}

func (c chainedHandler[T]) OnFailure(err error) {
	c.first.OnFailure(err)
	c.next.OnFailure(err)
}

func (c chainedHandler[T]) OnShutdown() {
	c.first.OnShutdown()
	c.next.OnShutdown()
}

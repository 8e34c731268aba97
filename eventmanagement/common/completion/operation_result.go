// Package completion models the outcome of an operation and the callbacks notified about it.
package completion

import "errors"

var ErrUnknownFailure = errors.New("operation failed without a cause")

// OperationResult is either a success carrying a value or a failure carrying an error.
type OperationResult[T any] struct {
	value T
	err   error
}

func Success[T any](value T) OperationResult[T] {
	return OperationResult[T]{value: value}
}

// Failure with a nil err is still a failure, with ErrUnknownFailure as cause.
func Failure[T any](err error) OperationResult[T] {
	if err == nil {
		err = ErrUnknownFailure
	}

	return OperationResult[T]{err: err}
}

// FromValue turns the usual (value, error) pair into an OperationResult.
func FromValue[T any](value T, err error) OperationResult[T] {
	if err != nil {
		return Failure[T](err)
	}

	return Success(value)
}

func (r OperationResult[T]) Get() (T, error) {
	return r.value, r.err
}

func (r OperationResult[T]) IsSuccess() bool {
	return r.err == nil
}

func (r OperationResult[T]) Err() error {
	return r.err
}

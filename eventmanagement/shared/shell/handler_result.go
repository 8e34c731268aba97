package shell

import "time"

// HandlerResult is what a command handler reports besides an error: the business outcome
// (idempotent or not) and how the retries went.
type HandlerResult struct {
	Idempotent bool

	// RetryAttempts counts all attempts, 1 means no retry happened.
	RetryAttempts int

	// TotalRetryDelay only counts the backoff waits, not the execution time.
	TotalRetryDelay time.Duration

	// LastErrorType is one of the ErrorType* constants.
	LastErrorType string

	// RetriesExhausted is true when every attempt ended with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for successful operations (non-idempotent).
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics, false)
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics, true)
}

// NewErrorResult creates a HandlerResult for failed operations that still reports the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics, false)
}

func resultFrom(retryMetrics RetryMetrics, idempotent bool) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// BusinessOutcome names the outcome for logs and metric labels.
func (r HandlerResult) BusinessOutcome() string {
	if r.Idempotent {
		return StatusIdempotent
	}

	return StatusSuccess
}

package core

// Outcome classifies what a Decide function concluded.
type Outcome int

const (
	// OutcomeIdempotent means the command is already reflected in the history, nothing is appended.
	OutcomeIdempotent Outcome = iota + 1
	// OutcomeSuccess means Event records the state change.
	OutcomeSuccess
	// OutcomeError means a business rule was violated. Event records the failure, Err describes it.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdempotent:
		return "idempotent"
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// DecisionResult is the outcome of a Decide function.
// The zero value is invalid, build it with IdempotentDecision, SuccessDecision or ErrorDecision.
type DecisionResult struct {
	Outcome Outcome
	Event   DomainEvent
	Err     error
}

func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: OutcomeIdempotent}
}

func SuccessDecision(event DomainEvent) DecisionResult {
	return DecisionResult{Outcome: OutcomeSuccess, Event: event}
}

// ErrorDecision carries the failure event to append and the error returned to the caller.
func ErrorDecision(event DomainEvent, err error) DecisionResult {
	return DecisionResult{Outcome: OutcomeError, Event: event, Err: err}
}

// HasEventToAppend reports whether the decision produced an event, failures included.
func (r DecisionResult) HasEventToAppend() bool {
	return r.Event != nil && r.Outcome != OutcomeIdempotent
}

// HasError returns the business rule violation, nil unless the outcome is OutcomeError.
func (r DecisionResult) HasError() error {
	if r.Outcome == OutcomeError {
		return r.Err
	}

	return nil
}

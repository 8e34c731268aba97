package core

import (
	"time"
)

// EventIDString is an event identifier in UUID string form.
type EventIDString = string

// RegistrationIDString is a registration identifier in UUID string form.
type RegistrationIDString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

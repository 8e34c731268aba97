package domain

import (
	"errors"

	"github.com/google/uuid"
)

// EventID identifies a scheduled event.
type EventID struct {
	value uuid.UUID
}

// GenerateEventID returns a new random EventID.
func GenerateEventID() EventID {
	return EventID{value: uuid.New()}
}

// EventIDFrom parses s as a UUID.
func EventIDFrom(s string) (EventID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EventID{}, errors.Join(ErrEventIDRequired, err)
	}

	return EventIDFromUUID(id)
}

func EventIDFromUUID(id uuid.UUID) (EventID, error) {
	if id == uuid.Nil {
		return EventID{}, ErrEventIDRequired
	}

	return EventID{value: id}, nil
}

func (id EventID) UUID() uuid.UUID {
	return id.value
}

func (id EventID) String() string {
	return id.value.String()
}

func (id EventID) IsZero() bool {
	return id.value == uuid.Nil
}

package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/core"
	"github.com/parsaloi/value-driven-domain-pattern/eventstore"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.EventScheduledEventType:
		return unmarshalPayload[core.EventScheduled](storableEvent.PayloadJSON)

	case core.AttendeeRegisteredEventType:
		return unmarshalPayload[core.AttendeeRegistered](storableEvent.PayloadJSON)

	case core.RegistrationStatusChangedEventType:
		return unmarshalPayload[core.RegistrationStatusChanged](storableEvent.PayloadJSON)

	case core.SchedulingEventFailedEventType:
		return unmarshalPayload[core.SchedulingEventFailed](storableEvent.PayloadJSON)

	case core.RegisteringAttendeeFailedEventType:
		return unmarshalPayload[core.RegisteringAttendeeFailed](storableEvent.PayloadJSON)

	case core.ChangingRegistrationStatusFailedEventType:
		return unmarshalPayload[core.ChangingRegistrationStatusFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var payload E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}

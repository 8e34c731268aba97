package domain

import "strings"

// EventKind enumerates the event variants.
type EventKind int

const (
	KindConcert EventKind = iota + 1
	KindConference
	KindExhibition
	KindWorkshop
)

// EventKinds lists every kind in menu order.
var EventKinds = []EventKind{KindConcert, KindConference, KindExhibition, KindWorkshop}

func (k EventKind) String() string {
	switch k {
	case KindConcert:
		return "Concert"
	case KindConference:
		return "Conference"
	case KindExhibition:
		return "Exhibition"
	case KindWorkshop:
		return "Workshop"
	default:
		return "Unknown"
	}
}

// ParseEventKind accepts the kind name in any case.
func ParseEventKind(s string) (EventKind, error) {
	for _, kind := range EventKinds {
		if strings.EqualFold(strings.TrimSpace(s), kind.String()) {
			return kind, nil
		}
	}

	return 0, ErrUnknownEventKind
}

// RegistrationStatus is the lifecycle state of a Registration.
type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "PENDING"
	StatusConfirmed RegistrationStatus = "CONFIRMED"
	StatusCancelled RegistrationStatus = "CANCELLED"
	StatusAttended  RegistrationStatus = "ATTENDED"
)

var RegistrationStatuses = []RegistrationStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusAttended}

func (s RegistrationStatus) String() string {
	return string(s)
}

// IsActive is true for every status except CANCELLED, active registrations occupy capacity.
func (s RegistrationStatus) IsActive() bool {
	return s != StatusCancelled
}

// IsBillable is true for the statuses that count as revenue.
func (s RegistrationStatus) IsBillable() bool {
	return s == StatusConfirmed || s == StatusAttended
}

// ParseRegistrationStatus accepts the status name in any case.
func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	candidate := RegistrationStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range RegistrationStatuses {
		if candidate == status {
			return status, nil
		}
	}

	return "", ErrUnknownRegistrationStatus
}

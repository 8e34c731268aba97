package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Attendee is a person registering for events.
type Attendee struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone string
}

// NewAttendee requires a non-blank name and an email containing "@", the phone number is free text.
func NewAttendee(id uuid.UUID, name, email, phone string) (Attendee, error) {
	if id == uuid.Nil {
		return Attendee{}, ErrAttendeeIDRequired
	}

	if strings.TrimSpace(name) == "" {
		return Attendee{}, ErrBlankAttendeeName
	}

	if !IsValidEmail(email) {
		return Attendee{}, ErrInvalidEmail
	}

	return Attendee{ID: id, Name: name, Email: strings.TrimSpace(email), Phone: phone}, nil
}

func IsValidEmail(email string) bool {
	return strings.TrimSpace(email) != "" && strings.Contains(email, "@")
}

// SameEmail compares two addresses case-insensitively.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (a Attendee) IsZero() bool {
	return a.ID == uuid.Nil
}

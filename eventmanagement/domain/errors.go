package domain

import "errors"

var (
	ErrEventIDRequired            = errors.New("event ID cannot be empty")
	ErrBlankEventName             = errors.New("event name cannot be blank")
	ErrMissingStartTime           = errors.New("start time cannot be empty")
	ErrMissingEndTime             = errors.New("end time cannot be empty")
	ErrEndBeforeStart             = errors.New("end time cannot be before start time")
	ErrMissingLocation            = errors.New("location cannot be empty")
	ErrNonPositiveMaxAttendees    = errors.New("maximum attendees must be positive")
	ErrMissingFee                 = errors.New("fee cannot be empty")
	ErrBlankArtist                = errors.New("artist cannot be blank")
	ErrNoSpeakers                 = errors.New("speakers list cannot be empty")
	ErrNoTopics                   = errors.New("topics list cannot be empty")
	ErrBlankTheme                 = errors.New("theme cannot be blank")
	ErrNoExhibitors               = errors.New("exhibitors list cannot be empty")
	ErrBlankInstructor            = errors.New("instructor cannot be blank")
	ErrBlankSkillLevel            = errors.New("skill level cannot be blank")
	ErrNonPositiveMaxParticipants = errors.New("maximum participants must be positive")
	ErrBlankLocationName          = errors.New("location name cannot be blank")
	ErrBlankAddress               = errors.New("address cannot be blank")
	ErrNegativeAmount             = errors.New("amount cannot be negative")
	ErrInvalidCurrency            = errors.New("currency is not a valid ISO 4217 code")
	ErrInvalidAmount              = errors.New("amount is not a valid decimal number")
	ErrAttendeeIDRequired         = errors.New("attendee ID cannot be empty")
	ErrBlankAttendeeName          = errors.New("name cannot be blank")
	ErrInvalidEmail               = errors.New("valid email is required")
	ErrRegistrationIDRequired     = errors.New("registration ID cannot be empty")
	ErrMissingAttendee            = errors.New("attendee cannot be empty")
	ErrMissingRegistrationTime    = errors.New("registration time cannot be empty")
	ErrUnknownEventKind           = errors.New("unknown event kind")
	ErrUnknownRegistrationStatus  = errors.New("unknown registration status")
)

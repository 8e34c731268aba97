package core

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

// EventScheduledEventType is the event type identifier.
const EventScheduledEventType = "EventScheduled"

var ErrUnsupportedEventKind = errors.New("unsupported event kind")

// EventScheduled represents when an organizer scheduled an event.
// The kind specific fields are empty for the other kinds.
type EventScheduled struct {
	EventID         EventIDString
	Kind            string
	Name            string
	StartTime       time.Time
	EndTime         time.Time
	VenueName       string
	VenueAddress    string
	MaxAttendees    int
	FeeAmount       string
	FeeCurrency     string
	Artist          string   `json:",omitempty"`
	Genre           string   `json:",omitempty"`
	Speakers        []string `json:",omitempty"`
	Topics          []string `json:",omitempty"`
	Theme           string   `json:",omitempty"`
	Exhibitors      []string `json:",omitempty"`
	Instructor      string   `json:",omitempty"`
	SkillLevel      string   `json:",omitempty"`
	MaxParticipants int      `json:",omitempty"`
	OccurredAt      OccurredAtTS
}

// BuildEventScheduled creates a new EventScheduled event from a validated domain event.
func BuildEventScheduled(event domain.Event, occurredAt time.Time) EventScheduled {
	fee := event.Fee()
	scheduled := EventScheduled{
		EventID:      event.ID().String(),
		Kind:         event.Kind().String(),
		Name:         event.Name(),
		StartTime:    ToOccurredAt(event.StartTime()),
		EndTime:      ToOccurredAt(event.EndTime()),
		VenueName:    event.Location().Name,
		VenueAddress: event.Location().Address,
		MaxAttendees: event.MaxAttendees(),
		FeeAmount:    fee.Amount().String(),
		FeeCurrency:  fee.CurrencyCode(),
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	switch e := event.(type) {
	case domain.Concert:
		scheduled.Artist = e.Artist()
		scheduled.Genre = e.Genre()
	case domain.Conference:
		scheduled.Speakers = e.Speakers()
		scheduled.Topics = e.Topics()
	case domain.Exhibition:
		scheduled.Theme = e.Theme()
		scheduled.Exhibitors = e.Exhibitors()
	case domain.Workshop:
		scheduled.Instructor = e.Instructor()
		scheduled.SkillLevel = e.SkillLevel()
		scheduled.MaxParticipants = e.MaxParticipants()
	}

	return scheduled
}

// IsEventType returns the event type identifier.
func (e EventScheduled) IsEventType() string {
	return EventScheduledEventType
}

// HasOccurredAt returns when this event occurred.
func (e EventScheduled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e EventScheduled) IsErrorEvent() bool {
	return false
}

// SameSchedule reports whether other describes the same event, ignoring OccurredAt.
func (e EventScheduled) SameSchedule(other EventScheduled) bool {
	return e.EventID == other.EventID &&
		e.Kind == other.Kind &&
		e.Name == other.Name &&
		e.StartTime.Equal(other.StartTime) &&
		e.EndTime.Equal(other.EndTime) &&
		e.VenueName == other.VenueName &&
		e.VenueAddress == other.VenueAddress &&
		e.MaxAttendees == other.MaxAttendees &&
		sameAmount(e.FeeAmount, other.FeeAmount) &&
		e.FeeCurrency == other.FeeCurrency &&
		e.Artist == other.Artist &&
		e.Genre == other.Genre &&
		slices.Equal(e.Speakers, other.Speakers) &&
		slices.Equal(e.Topics, other.Topics) &&
		e.Theme == other.Theme &&
		slices.Equal(e.Exhibitors, other.Exhibitors) &&
		e.Instructor == other.Instructor &&
		e.SkillLevel == other.SkillLevel &&
		e.MaxParticipants == other.MaxParticipants
}

// sameAmount compares decimal strings by value, so "15.00" and "15" are the same fee.
func sameAmount(a, b string) bool {
	if a == b {
		return true
	}

	x, errX := decimal.NewFromString(a)
	y, errY := decimal.NewFromString(b)

	return errX == nil && errY == nil && x.Equal(y)
}

// EventFrom rebuilds the domain value described by scheduled.
func EventFrom(scheduled EventScheduled) (domain.Event, error) {
	id, err := domain.EventIDFrom(scheduled.EventID)
	if err != nil {
		return nil, err
	}

	kind, err := domain.ParseEventKind(scheduled.Kind)
	if err != nil {
		return nil, err
	}

	fee, err := domain.ParseMoney(scheduled.FeeAmount, scheduled.FeeCurrency)
	if err != nil {
		return nil, err
	}

	details := domain.EventDetails{
		ID:           id,
		Name:         scheduled.Name,
		StartTime:    scheduled.StartTime,
		EndTime:      scheduled.EndTime,
		Location:     domain.Location{Name: scheduled.VenueName, Address: scheduled.VenueAddress},
		MaxAttendees: scheduled.MaxAttendees,
	}

	switch kind {
	case domain.KindConcert:
		return domain.NewConcert(details, scheduled.Artist, scheduled.Genre, fee)
	case domain.KindConference:
		return domain.NewConference(details, scheduled.Speakers, scheduled.Topics, fee)
	case domain.KindExhibition:
		return domain.NewExhibition(details, scheduled.Theme, scheduled.Exhibitors, fee)
	case domain.KindWorkshop:
		return domain.NewWorkshop(details, scheduled.Instructor, scheduled.SkillLevel, fee, scheduled.MaxParticipants)
	default:
		return nil, ErrUnsupportedEventKind
	}
}

package domain

import (
	"strings"
	"time"
)

// DateTimeLayout is how start and end times are written by humans, e.g. "2025-04-15 14:30".
const DateTimeLayout = "2006-01-02 15:04"

// Event is implemented by Concert, Conference, Exhibition and Workshop only.
type Event interface {
	ID() EventID
	Name() string
	StartTime() time.Time
	EndTime() time.Time
	Location() Location
	MaxAttendees() int
	Kind() EventKind
	Fee() Money
	Details() EventDetails
	isEvent()
}

// EventDetails holds the data every event kind shares.
type EventDetails struct {
	ID           EventID
	Name         string
	StartTime    time.Time
	EndTime      time.Time
	Location     Location
	MaxAttendees int
}

// ValidateEvent checks the shared event data.
func ValidateEvent(d EventDetails) error {
	switch {
	case d.ID.IsZero():
		return ErrEventIDRequired
	case strings.TrimSpace(d.Name) == "":
		return ErrBlankEventName
	case d.StartTime.IsZero():
		return ErrMissingStartTime
	case d.EndTime.IsZero():
		return ErrMissingEndTime
	case d.EndTime.Before(d.StartTime):
		return ErrEndBeforeStart
	case d.Location.IsZero():
		return ErrMissingLocation
	case d.MaxAttendees <= 0:
		return ErrNonPositiveMaxAttendees
	}

	if _, err := NewLocation(d.Location.Name, d.Location.Address); err != nil {
		return err
	}

	return nil
}

// base carries the validated shared data of all variants.
type base struct {
	details EventDetails
}

func newBase(d EventDetails, fee Money) (base, error) {
	if err := ValidateEvent(d); err != nil {
		return base{}, err
	}

	if !fee.IsValid() {
		return base{}, ErrMissingFee
	}

	return base{details: d}, nil
}

func (b base) ID() EventID           { return b.details.ID }
func (b base) Name() string          { return b.details.Name }
func (b base) StartTime() time.Time  { return b.details.StartTime }
func (b base) EndTime() time.Time    { return b.details.EndTime }
func (b base) Location() Location    { return b.details.Location }
func (b base) MaxAttendees() int     { return b.details.MaxAttendees }
func (b base) Details() EventDetails { return b.details }
func (base) isEvent()                {}

// Concert is a performance by an artist.
type Concert struct {
	base
	artist      string
	genre       string
	ticketPrice Money
}

func NewConcert(d EventDetails, artist, genre string, ticketPrice Money) (Concert, error) {
	b, err := newBase(d, ticketPrice)
	if err != nil {
		return Concert{}, err
	}

	if strings.TrimSpace(artist) == "" {
		return Concert{}, ErrBlankArtist
	}

	return Concert{base: b, artist: artist, genre: genre, ticketPrice: ticketPrice}, nil
}

func (c Concert) Kind() EventKind    { return KindConcert }
func (c Concert) Fee() Money         { return c.ticketPrice }
func (c Concert) Artist() string     { return c.artist }
func (c Concert) Genre() string      { return c.genre }
func (c Concert) TicketPrice() Money { return c.ticketPrice }

// Conference has speakers presenting topics.
type Conference struct {
	base
	speakers        []string
	topics          []string
	registrationFee Money
}

func NewConference(d EventDetails, speakers, topics []string, registrationFee Money) (Conference, error) {
	b, err := newBase(d, registrationFee)
	if err != nil {
		return Conference{}, err
	}

	speakers = nonBlank(speakers)
	if len(speakers) == 0 {
		return Conference{}, ErrNoSpeakers
	}

	topics = nonBlank(topics)
	if len(topics) == 0 {
		return Conference{}, ErrNoTopics
	}

	return Conference{base: b, speakers: speakers, topics: topics, registrationFee: registrationFee}, nil
}

func (c Conference) Kind() EventKind        { return KindConference }
func (c Conference) Fee() Money             { return c.registrationFee }
func (c Conference) Speakers() []string     { return append([]string(nil), c.speakers...) }
func (c Conference) Topics() []string       { return append([]string(nil), c.topics...) }
func (c Conference) RegistrationFee() Money { return c.registrationFee }

// Exhibition shows the work of exhibitors under a theme.
type Exhibition struct {
	base
	theme      string
	exhibitors []string
	entryFee   Money
}

func NewExhibition(d EventDetails, theme string, exhibitors []string, entryFee Money) (Exhibition, error) {
	b, err := newBase(d, entryFee)
	if err != nil {
		return Exhibition{}, err
	}

	if strings.TrimSpace(theme) == "" {
		return Exhibition{}, ErrBlankTheme
	}

	exhibitors = nonBlank(exhibitors)
	if len(exhibitors) == 0 {
		return Exhibition{}, ErrNoExhibitors
	}

	return Exhibition{base: b, theme: theme, exhibitors: exhibitors, entryFee: entryFee}, nil
}

func (e Exhibition) Kind() EventKind      { return KindExhibition }
func (e Exhibition) Fee() Money           { return e.entryFee }
func (e Exhibition) Theme() string        { return e.theme }
func (e Exhibition) Exhibitors() []string { return append([]string(nil), e.exhibitors...) }
func (e Exhibition) EntryFee() Money      { return e.entryFee }

// Workshop is a hands-on session led by an instructor, limited by MaxParticipants.
type Workshop struct {
	base
	instructor       string
	skillLevel       string
	participationFee Money
	maxParticipants  int
}

func NewWorkshop(
	d EventDetails,
	instructor string,
	skillLevel string,
	participationFee Money,
	maxParticipants int,
) (Workshop, error) {

	b, err := newBase(d, participationFee)
	if err != nil {
		return Workshop{}, err
	}

	if strings.TrimSpace(instructor) == "" {
		return Workshop{}, ErrBlankInstructor
	}

	if strings.TrimSpace(skillLevel) == "" {
		return Workshop{}, ErrBlankSkillLevel
	}

	if maxParticipants <= 0 {
		return Workshop{}, ErrNonPositiveMaxParticipants
	}

	return Workshop{
		base:             b,
		instructor:       instructor,
		skillLevel:       skillLevel,
		participationFee: participationFee,
		maxParticipants:  maxParticipants,
	}, nil
}

func (w Workshop) Kind() EventKind         { return KindWorkshop }
func (w Workshop) Fee() Money              { return w.participationFee }
func (w Workshop) Instructor() string      { return w.instructor }
func (w Workshop) SkillLevel() string      { return w.skillLevel }
func (w Workshop) ParticipationFee() Money { return w.participationFee }
func (w Workshop) MaxParticipants() int    { return w.maxParticipants }

// nonBlank returns a trimmed copy of items without blank entries.
func nonBlank(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/changeregistrationstatus"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/registerattendee"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/command/scheduleevent"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/eventattendees"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/eventdetails"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/listevents"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/totalrevenue"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell"
)

const (
	menuCreateEvent = iota + 1
	menuRegisterAttendee
	menuViewRevenue
	menuListEvents
	menuExit
	menuViewEventInfo
	menuViewEventAttendees
	menuChangeRegistrationStatus
)

var menu = []string{
	"1) Create Event",
	"2) Register Attendee",
	"3) View Revenue",
	"4) List Events",
	"5) Exit",
	"6) View Event Info",
	"7) View Event Attendees",
	"8) Change Registration Status",
}

// Session is one interactive menu loop over the input and output streams.
type Session struct {
	handlers Handlers
	prompt   *prompter
	currency currency.Unit
	location *time.Location
	clock    func() time.Time
	palette  Palette
}

type SessionOption func(*Session)

// WithCurrency sets the currency of new event fees.
func WithCurrency(unit currency.Unit) SessionOption {
	return func(s *Session) {
		s.currency = unit
	}
}

// WithLocation sets the time zone dates are read and shown in.
func WithLocation(location *time.Location) SessionOption {
	return func(s *Session) {
		if location != nil {
			s.location = location
		}
	}
}

func WithClock(clock func() time.Time) SessionOption {
	return func(s *Session) {
		s.clock = clock
	}
}

func WithPalette(palette Palette) SessionOption {
	return func(s *Session) {
		s.palette = palette
	}
}

func NewSession(handlers Handlers, in io.Reader, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		handlers: handlers,
		prompt:   newPrompter(in, out),
		currency: domain.DefaultCurrency,
		location: time.Local,
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run shows the menu until the user exits or the input ends.
// Only cancellation and timeouts end the session with an error, all other failures are reported and the menu is shown again.
func (s *Session) Run(ctx context.Context) error {
	s.prompt.println(s.palette.Heading("Welcome to Event Organizer CLI"))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.prompt.println("\nOptions:")
		for _, item := range menu {
			s.prompt.println(item)
		}

		choice, ok := s.prompt.readInt("Choose an option: ", menuCreateEvent, len(menu))
		if !ok {
			s.prompt.println("Invalid input or input stream closed. Returning to main menu.")
			if s.prompt.closed {
				s.prompt.println("Input stream unavailable. Exiting.")
				return nil
			}

			continue
		}

		if choice == menuExit {
			s.prompt.println("Thank you for using Event Organizer CLI. Goodbye!")
			return nil
		}

		if err := s.dispatch(ctx, choice); err != nil {
			return err
		}
	}
}

func (s *Session) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case menuCreateEvent:
		return s.createEvent(ctx)
	case menuRegisterAttendee:
		return s.registerAttendee(ctx)
	case menuViewRevenue:
		return s.viewRevenue(ctx)
	case menuListEvents:
		_, err := s.listEvents(ctx)
		return err
	case menuViewEventInfo:
		return s.viewEventInfo(ctx)
	case menuViewEventAttendees:
		return s.viewEventAttendees(ctx)
	case menuChangeRegistrationStatus:
		return s.changeRegistrationStatus(ctx)
	}

	return nil
}

// report prints a failure and swallows it unless it ends the session.
func (s *Session) report(prefix string, err error) error {
	if shell.IsCancellationError(err) || shell.IsTimeoutError(err) {
		return err
	}

	s.prompt.println(s.palette.Failure(prefix + err.Error()))

	return nil
}

func (s *Session) fail(msg string) error {
	s.prompt.println(s.palette.Failure(msg))
	return nil
}

func (s *Session) createEvent(ctx context.Context) error {
	kindChoice, ok := s.prompt.readInt("Event Types: 1) Concert 2) Conference 3) Exhibition 4) Workshop\nSelect Event Type: ", 1, len(domain.EventKinds))
	if !ok {
		return s.fail("Invalid event type. Event creation cancelled.")
	}

	details, ok := s.readEventDetails()
	if !ok {
		return nil
	}

	event, ok := s.readKindSpecific(domain.EventKinds[kindChoice-1], details)
	if !ok {
		return nil
	}

	if _, err := s.handlers.ScheduleEvent.Handle(ctx, scheduleevent.BuildCommand(event, s.clock())); err != nil {
		return s.report("Event creation failed: ", err)
	}

	s.prompt.println(s.palette.Success("Event created successfully!"))

	return nil
}

func (s *Session) readEventDetails() (domain.EventDetails, bool) {
	name, ok := s.prompt.readNonEmpty("Event Name: ")
	if !ok {
		return domain.EventDetails{}, s.cancelled("Invalid event name. Event creation cancelled.")
	}

	start, ok := s.prompt.readDateTime("Start Time (yyyy-MM-dd HH:mm): ", s.location)
	if !ok {
		return domain.EventDetails{}, s.cancelled("Invalid start time. Event creation cancelled.")
	}

	end, ok := s.prompt.readDateTime("End Time (yyyy-MM-dd HH:mm): ", s.location)
	if !ok || end.Before(start) {
		return domain.EventDetails{}, s.cancelled("Invalid end time. Event creation cancelled.")
	}

	venue, ok := s.prompt.readNonEmpty("Venue Name: ")
	if !ok {
		return domain.EventDetails{}, s.cancelled("Invalid venue name. Event creation cancelled.")
	}

	address, ok := s.prompt.readNonEmpty("Venue Address: ")
	if !ok {
		return domain.EventDetails{}, s.cancelled("Invalid venue address. Event creation cancelled.")
	}

	maxAttendees, ok := s.prompt.readPositiveInt("Max Attendees: ")
	if !ok {
		return domain.EventDetails{}, s.cancelled("Invalid max attendees. Event creation cancelled.")
	}

	return domain.EventDetails{
		ID:           domain.GenerateEventID(),
		Name:         name,
		StartTime:    start,
		EndTime:      end,
		Location:     domain.Location{Name: venue, Address: address},
		MaxAttendees: maxAttendees,
	}, true
}

// cancelled prints msg and returns false so prompts can bail out in one line.
func (s *Session) cancelled(msg string) bool {
	_ = s.fail(msg)
	return false
}

func (s *Session) readFee(label string) (domain.Money, bool) {
	amount, ok := s.prompt.readPositiveAmount(fmt.Sprintf("%s (%s): ", label, s.currency))
	if !ok {
		return domain.Money{}, false
	}

	fee, err := domain.NewMoney(amount, s.currency)
	if err != nil {
		return domain.Money{}, false
	}

	return fee, true
}

func (s *Session) readKindSpecific(kind domain.EventKind, details domain.EventDetails) (domain.Event, bool) {
	var (
		event domain.Event
		err   error
	)

	switch kind {
	case domain.KindConcert:
		artist, ok := s.prompt.readNonEmpty("Artist: ")
		if !ok {
			return nil, s.cancelled("Invalid artist. Event creation cancelled.")
		}

		genre, ok := s.prompt.readNonEmpty("Genre: ")
		if !ok {
			return nil, s.cancelled("Invalid genre. Event creation cancelled.")
		}

		price, ok := s.readFee("Ticket Price")
		if !ok {
			return nil, s.cancelled("Invalid ticket price. Event creation cancelled.")
		}

		event, err = domain.NewConcert(details, artist, genre, price)

	case domain.KindConference:
		speakers, ok := s.prompt.readList("Speakers (comma-separated names): ")
		if !ok {
			return nil, s.cancelled("Invalid speakers list. Event creation cancelled.")
		}

		topics, ok := s.prompt.readList("Topics (comma-separated): ")
		if !ok {
			return nil, s.cancelled("Invalid topics list. Event creation cancelled.")
		}

		fee, ok := s.readFee("Registration Fee")
		if !ok {
			return nil, s.cancelled("Invalid registration fee. Event creation cancelled.")
		}

		event, err = domain.NewConference(details, speakers, topics, fee)

	case domain.KindExhibition:
		theme, ok := s.prompt.readNonEmpty("Theme: ")
		if !ok {
			return nil, s.cancelled("Invalid theme. Event creation cancelled.")
		}

		exhibitors, ok := s.prompt.readList("Exhibitors (comma-separated names): ")
		if !ok {
			return nil, s.cancelled("Invalid exhibitors list. Event creation cancelled.")
		}

		fee, ok := s.readFee("Entry Fee")
		if !ok {
			return nil, s.cancelled("Invalid entry fee. Event creation cancelled.")
		}

		event, err = domain.NewExhibition(details, theme, exhibitors, fee)

	case domain.KindWorkshop:
		instructor, ok := s.prompt.readNonEmpty("Instructor: ")
		if !ok {
			return nil, s.cancelled("Invalid instructor. Event creation cancelled.")
		}

		skillLevel, ok := s.prompt.readNonEmpty("Skill Level: ")
		if !ok {
			return nil, s.cancelled("Invalid skill level. Event creation cancelled.")
		}

		fee, ok := s.readFee("Participation Fee")
		if !ok {
			return nil, s.cancelled("Invalid participation fee. Event creation cancelled.")
		}

		maxParticipants, ok := s.prompt.readPositiveInt("Max Participants: ")
		if !ok {
			return nil, s.cancelled("Invalid max participants. Event creation cancelled.")
		}

		event, err = domain.NewWorkshop(details, instructor, skillLevel, fee, maxParticipants)

	default:
		err = domain.ErrUnknownEventKind
	}

	if err != nil {
		return nil, s.cancelled(fmt.Sprintf("Invalid event: %v. Event creation cancelled.", err))
	}

	return event, true
}

func (s *Session) registerAttendee(ctx context.Context) error {
	events, err := s.handlers.ListEvents.Handle(ctx, listevents.BuildQuery())
	if err != nil {
		return s.report("Listing events failed: ", err)
	}

	if events.Count == 0 {
		s.prompt.println("No events available to register for.")
		return nil
	}

	s.prompt.println("Available Events:")
	for i, summary := range events.Events {
		s.prompt.printf("%d: %s (%s)\n", i, summary.Name, summary.Kind)
	}

	index, ok := s.prompt.readInt("Select Event Index: ", 0, events.Count-1)
	if !ok {
		return s.fail("Invalid event selection. Registration cancelled.")
	}

	summary := events.Events[index]

	name, ok := s.prompt.readNonEmpty("Attendee Name: ")
	if !ok {
		return s.fail("Invalid attendee name. Registration cancelled.")
	}

	email, ok := s.prompt.readEmail("Email: ")
	if !ok {
		return s.fail("Invalid email. Registration cancelled.")
	}

	phone, ok := s.prompt.readNonEmpty("Phone: ")
	if !ok {
		return s.fail("Invalid phone. Registration cancelled.")
	}

	attendee, err := domain.NewAttendee(uuid.New(), name, email, phone)
	if err != nil {
		return s.fail(fmt.Sprintf("Invalid attendee: %v. Registration cancelled.", err))
	}

	eventID, err := domain.EventIDFrom(summary.EventID)
	if err != nil {
		return s.report("Registration failed: ", err)
	}

	result, err := s.handlers.RegisterAttendee.Handle(ctx, registerattendee.BuildCommand(eventID, uuid.New(), attendee, s.clock()))
	switch {
	case errors.Is(err, registerattendee.ErrNoCapacity):
		return s.fail("Registration failed: No capacity available for " + summary.Name + ".")
	case err != nil:
		return s.report("Registration failed: ", err)
	case result.Idempotent:
		s.prompt.printf("%s is already registered for %s.\n", attendee.Email, summary.Name)
	default:
		s.prompt.println(s.palette.Success("Registration successful for " + summary.Name + "!"))
	}

	return nil
}

func (s *Session) viewRevenue(ctx context.Context) error {
	revenue, err := s.handlers.TotalRevenue.Handle(ctx, totalrevenue.BuildQuery())
	if err != nil {
		return s.report("Revenue unavailable: ", err)
	}

	s.prompt.println(RevenueLine(revenue))

	return nil
}

// listEvents prints the numbered event list and returns it for a following selection.
func (s *Session) listEvents(ctx context.Context) (listevents.ScheduledEvents, error) {
	events, err := s.handlers.ListEvents.Handle(ctx, listevents.BuildQuery())
	if err != nil {
		return listevents.ScheduledEvents{}, s.report("Listing events failed: ", err)
	}

	if events.Count == 0 {
		s.prompt.println("No events available.")
		return events, nil
	}

	for i, summary := range events.Events {
		s.prompt.println(EventLine(i, summary, s.location))
	}

	return events, nil
}

// selectEvent lists the events and asks for one of them.
func (s *Session) selectEvent(ctx context.Context, prompt string) (listevents.EventSummary, domain.EventID, bool, error) {
	events, err := s.listEvents(ctx)
	if err != nil || events.Count == 0 {
		return listevents.EventSummary{}, domain.EventID{}, false, err
	}

	index, ok := s.prompt.readInt(prompt, 0, events.Count-1)
	if !ok {
		return listevents.EventSummary{}, domain.EventID{}, false, s.fail("Invalid event selection. Returning to main menu.")
	}

	summary := events.Events[index]

	eventID, err := domain.EventIDFrom(summary.EventID)
	if err != nil {
		return listevents.EventSummary{}, domain.EventID{}, false, s.report("Invalid event: ", err)
	}

	return summary, eventID, true, nil
}

func (s *Session) viewEventInfo(ctx context.Context) error {
	_, eventID, ok, err := s.selectEvent(ctx, "Select Event Index to View Info: ")
	if !ok {
		return err
	}

	details, err := s.handlers.EventDetails.Handle(ctx, eventdetails.BuildQuery(eventID))
	if err != nil {
		return s.report("Event information unavailable: ", err)
	}

	if !details.Found() {
		return s.fail("Event no longer available.")
	}

	s.prompt.println("\nEvent Information:")
	RenderEventInfo(s.prompt.out, details, s.location)

	return nil
}

func (s *Session) viewEventAttendees(ctx context.Context) error {
	summary, eventID, ok, err := s.selectEvent(ctx, "Select Event Index to View Attendees: ")
	if !ok {
		return err
	}

	attendees, err := s.handlers.EventAttendees.Handle(ctx, eventattendees.BuildQuery(eventID))
	if err != nil {
		return s.report("Attendees unavailable: ", err)
	}

	if attendees.Count == 0 {
		s.prompt.println("No attendees registered for " + summary.Name + ".")
		return nil
	}

	s.prompt.println("\nAttendees for " + summary.Name + ":")
	for _, attendee := range attendees.Attendees {
		s.prompt.printf("Name: %s, Email: %s, Phone: %s, Status: %s\n", attendee.Name, attendee.Email, attendee.Phone, attendee.Status)
	}

	return nil
}

func (s *Session) changeRegistrationStatus(ctx context.Context) error {
	summary, eventID, ok, err := s.selectEvent(ctx, "Select Event Index: ")
	if !ok {
		return err
	}

	attendees, err := s.handlers.EventAttendees.Handle(ctx, eventattendees.BuildQuery(eventID))
	if err != nil {
		return s.report("Attendees unavailable: ", err)
	}

	if attendees.Count == 0 {
		s.prompt.println("No attendees registered for " + summary.Name + ".")
		return nil
	}

	for i, attendee := range attendees.Attendees {
		s.prompt.printf("%d: %s <%s> - %s\n", i, attendee.Name, attendee.Email, attendee.Status)
	}

	index, ok := s.prompt.readInt("Select Attendee Index: ", 0, attendees.Count-1)
	if !ok {
		return s.fail("Invalid attendee selection. Returning to main menu.")
	}

	attendee := attendees.Attendees[index]

	status, ok := s.prompt.readStatus("New Status (PENDING, CONFIRMED, CANCELLED, ATTENDED): ")
	if !ok {
		return s.fail("Invalid status. Returning to main menu.")
	}

	registrationID, err := uuid.Parse(attendee.RegistrationID)
	if err != nil {
		return s.report("Status change failed: ", err)
	}

	result, err := s.handlers.ChangeRegistrationStatus.Handle(ctx, changeregistrationstatus.BuildCommand(eventID, registrationID, status, s.clock()))
	switch {
	case err != nil:
		return s.report("Status change failed: ", err)
	case result.Idempotent:
		s.prompt.printf("Registration of %s is already %s.\n", attendee.Name, status)
	default:
		s.prompt.println(s.palette.Success(fmt.Sprintf("Registration of %s is now %s.", attendee.Name, status)))
	}

	return nil
}

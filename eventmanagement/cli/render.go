package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/eventattendees"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/eventdetails"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/listevents"
	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/features/query/totalrevenue"
)

// Palette colors the outcome messages. The zero value prints plain text.
type Palette struct {
	enabled bool
}

func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

func (p Palette) Success(a ...any) string {
	if !p.enabled {
		return fmt.Sprint(a...)
	}

	return color.Green.Sprint(a...)
}

func (p Palette) Failure(a ...any) string {
	if !p.enabled {
		return fmt.Sprint(a...)
	}

	return color.Red.Sprint(a...)
}

func (p Palette) Heading(a ...any) string {
	if !p.enabled {
		return fmt.Sprint(a...)
	}

	return color.Magenta.Sprint(a...)
}

func formatTime(t time.Time, location *time.Location) string {
	return t.In(location).Format(domain.DateTimeLayout)
}

func formatFee(summary listevents.EventSummary) string {
	fee, err := domain.ParseMoney(summary.FeeAmount, summary.FeeCurrency)
	if err != nil {
		return strings.TrimSpace(summary.FeeAmount + " " + summary.FeeCurrency)
	}

	return fee.String()
}

// EventLine is the menu representation of the event at index.
func EventLine(index int, summary listevents.EventSummary, location *time.Location) string {
	return fmt.Sprintf("%d: %s (%s - %s) - %s",
		index,
		summary.Name,
		formatTime(summary.StartTime, location),
		formatTime(summary.EndTime, location),
		summary.Kind,
	)
}

// RevenueLine reports the revenue total.
func RevenueLine(revenue totalrevenue.Revenue) string {
	return "Total Revenue: " + revenue.Total.String()
}

// RenderEventTable writes the event list as a table, the first column is the index accepted by ResolveEvent.
func RenderEventTable(w io.Writer, events listevents.ScheduledEvents, location *time.Location) {
	table := newTable(w, []string{"#", "Name", "Kind", "Start", "End", "Venue", "Fee", "Booked", "ID"})

	for i, summary := range events.Events {
		table.Append([]string{
			strconv.Itoa(i),
			summary.Name,
			summary.Kind,
			formatTime(summary.StartTime, location),
			formatTime(summary.EndTime, location),
			summary.VenueName,
			formatFee(summary),
			fmt.Sprintf("%d/%d", summary.ActiveRegistrations, summary.Capacity),
			summary.EventID,
		})
	}

	table.Render()
}

// RenderAttendeeTable writes the registrations of one event as a table.
func RenderAttendeeTable(w io.Writer, attendees eventattendees.EventAttendees, location *time.Location) {
	table := newTable(w, []string{"Name", "Email", "Phone", "Status", "Registered"})

	for _, attendee := range attendees.Attendees {
		table.Append([]string{
			attendee.Name,
			attendee.Email,
			attendee.Phone,
			attendee.Status,
			formatTime(attendee.RegisteredAt, location),
		})
	}

	table.Render()
}

// RenderEventInfo writes every field of the event followed by its booking state.
func RenderEventInfo(w io.Writer, details eventdetails.EventDetails, location *time.Location) {
	event := details.Event
	lines := []string{
		"Name: " + event.Name(),
		"Kind: " + event.Kind().String(),
		"Start Time: " + formatTime(event.StartTime(), location),
		"End Time: " + formatTime(event.EndTime(), location),
		fmt.Sprintf("Location: %s (%s)", event.Location().Name, event.Location().Address),
		fmt.Sprintf("Max Attendees: %d", event.MaxAttendees()),
	}

	switch e := event.(type) {
	case domain.Concert:
		lines = append(lines,
			"Artist: "+e.Artist(),
			"Genre: "+e.Genre(),
			"Ticket Price: "+e.TicketPrice().String(),
		)
	case domain.Conference:
		lines = append(lines,
			"Speakers: "+strings.Join(e.Speakers(), ", "),
			"Topics: "+strings.Join(e.Topics(), ", "),
			"Registration Fee: "+e.RegistrationFee().String(),
		)
	case domain.Exhibition:
		lines = append(lines,
			"Theme: "+e.Theme(),
			"Exhibitors: "+strings.Join(e.Exhibitors(), ", "),
			"Entry Fee: "+e.EntryFee().String(),
		)
	case domain.Workshop:
		lines = append(lines,
			"Instructor: "+e.Instructor(),
			"Skill Level: "+e.SkillLevel(),
			"Participation Fee: "+e.ParticipationFee().String(),
			fmt.Sprintf("Max Participants: %d", e.MaxParticipants()),
		)
	}

	lines = append(lines,
		fmt.Sprintf("Capacity: %d", details.Capacity),
		fmt.Sprintf("Registrations: %d active, %d cancelled", details.ActiveRegistrations, details.CancelledRegistrations),
		fmt.Sprintf("Available Spots: %d", details.AvailableSpots()),
	)

	for _, line := range lines {
		_, _ = fmt.Fprintln(w, line)
	}
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	return table
}

package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/cli"
	"github.com/parsaloi/value-driven-domain-pattern/testutil/fixtures"
)

const (
	createRockNight = "1\n1\nRock Night\n2025-04-15 14:30\n2025-04-15 17:30\nArena\n123 Main St\n1\nThe Band\nRock\n50.00\n"
	createWorkshop  = "1\n4\nGo Basics\n2025-04-16 09:00\n2025-04-16 12:00\nLab\n1 Campus Way\n10\nRob Pike\nBeginner\n20\n5\n"
	registerJane    = "2\n0\nJane Doe\njane@example.com\n555-1234\n"
	exit            = "5\n"
)

func runSession(t *testing.T, input string, opts ...cli.SessionOption) string {
	t.Helper()

	handlers, err := cli.NewHandlers(fixtures.MemoryStore(t), cli.Observability{})
	require.NoError(t, err)

	var out bytes.Buffer
	opts = append([]cli.SessionOption{
		cli.WithLocation(time.UTC),
		cli.WithClock(func() time.Time { return fixtures.BaseTime }),
	}, opts...)

	session := cli.NewSession(handlers, strings.NewReader(input), &out, opts...)
	require.NoError(t, session.Run(context.Background()))

	return out.String()
}

func Test_Session_Run_ExitsOnRequest(t *testing.T) {
	// act
	output := runSession(t, exit)

	// assert
	assert.Contains(t, output, "Welcome to Event Organizer CLI")
	assert.Contains(t, output, "8) Change Registration Status")
	assert.Contains(t, output, "Thank you for using Event Organizer CLI. Goodbye!")
}

func Test_Session_Run_EndsWhenInputIsExhausted(t *testing.T) {
	// act
	output := runSession(t, "")

	// assert
	assert.Contains(t, output, "Invalid input or input stream closed. Returning to main menu.")
	assert.Contains(t, output, "Input stream unavailable. Exiting.")
	assert.NotContains(t, output, "Goodbye")
}

func Test_Session_Run_RetriesInvalidMenuChoices(t *testing.T) {
	// act
	output := runSession(t, "x\n9\n"+exit)

	// assert
	assert.Contains(t, output, "Invalid input. Please enter a valid number.")
	assert.Contains(t, output, "Please enter a number between 1 and 8.")
	assert.Contains(t, output, "Goodbye!")
}

func Test_Session_Run_GivesUpAfterThreeInvalidAnswers(t *testing.T) {
	// act
	output := runSession(t, "a\nb\nc\n"+exit)

	// assert
	assert.Equal(t, 3, strings.Count(output, "Invalid input. Please enter a valid number."))
	assert.Contains(t, output, "Invalid input or input stream closed. Returning to main menu.")
	assert.Contains(t, output, "Goodbye!")
}

func Test_Session_Run_ScheduleRegisterAndReport(t *testing.T) {
	// arrange
	input := createRockNight +
		registerJane +
		"2\n0\nBob\nbob@example.com\n555-0000\n" +
		"3\n" +
		"4\n" +
		"6\n0\n" +
		"7\n0\n" +
		exit

	// act
	output := runSession(t, input)

	// assert
	assert.Contains(t, output, "Ticket Price (USD): ")
	assert.Contains(t, output, "Event created successfully!")
	assert.Contains(t, output, "0: Rock Night (Concert)")
	assert.Contains(t, output, "Registration successful for Rock Night!")
	assert.Contains(t, output, "Registration failed: No capacity available for Rock Night.")
	assert.Contains(t, output, "Total Revenue: 50.00 USD")
	assert.Contains(t, output, "0: Rock Night (2025-04-15 14:30 - 2025-04-15 17:30) - Concert")
	assert.Contains(t, output, "\nEvent Information:")
	assert.Contains(t, output, "Location: Arena (123 Main St)")
	assert.Contains(t, output, "Artist: The Band")
	assert.Contains(t, output, "Ticket Price: 50.00 USD")
	assert.Contains(t, output, "Available Spots: 0")
	assert.Contains(t, output, "\nAttendees for Rock Night:")
	assert.Contains(t, output, "Name: Jane Doe, Email: jane@example.com, Phone: 555-1234, Status: CONFIRMED")
	assert.NotContains(t, output, "bob@example.com, Phone")
}

func Test_Session_Run_DuplicateEmailIsReported(t *testing.T) {
	// act
	output := runSession(t, createWorkshop+registerJane+"2\n0\nJane D.\nJANE@example.com\n555-9999\n"+exit)

	// assert
	assert.Contains(t, output, "Registration successful for Go Basics!")
	assert.Contains(t, output, "JANE@example.com is already registered for Go Basics.")
}

func Test_Session_Run_ChangeRegistrationStatus(t *testing.T) {
	// arrange
	input := createWorkshop +
		registerJane +
		"8\n0\n0\nattended\n" +
		"8\n0\n0\nattended\n" +
		"8\n0\n0\npending\n" +
		"3\n" +
		exit

	// act
	output := runSession(t, input)

	// assert
	assert.Contains(t, output, "0: Jane Doe <jane@example.com> - CONFIRMED")
	assert.Contains(t, output, "Registration of Jane Doe is now ATTENDED.")
	assert.Contains(t, output, "Registration of Jane Doe is already ATTENDED.")
	assert.Contains(t, output, "Status change failed: ")
	assert.Contains(t, output, "Total Revenue: 20.00 USD")
}

func Test_Session_Run_CancelledRegistrationIsNotBilled(t *testing.T) {
	// act
	output := runSession(t, createWorkshop+registerJane+"8\n0\n0\nCANCELLED\n3\n"+exit)

	// assert
	assert.Contains(t, output, "Registration of Jane Doe is now CANCELLED.")
	assert.Contains(t, output, "Total Revenue: 0.00 USD")
}

func Test_Session_Run_CreateEventCancellations(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    string
	}{
		{
			description: "end before start",
			input:       "1\n1\nGig\n2025-04-15 14:30\n2025-04-15 12:00\n",
			expected:    "Invalid end time. Event creation cancelled.",
		},
		{
			description: "bad dates",
			input:       "1\n1\nGig\n15.04.2025\n2025/04/15\nsoon\n",
			expected:    "Invalid start time. Event creation cancelled.",
		},
		{
			description: "non positive price",
			input:       "1\n1\nGig\n2025-04-15 14:30\n2025-04-15 17:30\nArena\nMain St\n10\nBand\nRock\n0\n-1\nfree\n",
			expected:    "Invalid ticket price. Event creation cancelled.",
		},
		{
			description: "empty speaker list",
			input:       "1\n2\nGopherCon\n2025-04-15 09:00\n2025-04-15 17:00\nHall\nMain St\n10\n , ,\n\n,\n",
			expected:    "Invalid speakers list. Event creation cancelled.",
		},
		{
			description: "unknown event type",
			input:       "1\n0\n5\n7\n",
			expected:    "Invalid event type. Event creation cancelled.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			output := runSession(t, tc.input+"4\n"+exit)

			// assert
			assert.Contains(t, output, tc.expected)
			assert.NotContains(t, output, "Event created successfully!")
			assert.Contains(t, output, "No events available.")
		})
	}
}

func Test_Session_Run_EmptyStore(t *testing.T) {
	// act
	output := runSession(t, "2\n3\n6\n7\n8\n"+exit)

	// assert
	assert.Contains(t, output, "No events available to register for.")
	assert.Contains(t, output, "Total Revenue: 0.00 USD")
	assert.Equal(t, 3, strings.Count(output, "No events available.\n"))
}

func Test_Session_Run_UsesConfiguredCurrency(t *testing.T) {
	// arrange
	input := "1\n3\nArt Expo\n2025-04-17 10:00\n2025-04-17 18:00\nGallery\nArt St 5\n50\nModern\nAnna, Ben\n12.5\n" +
		registerJane + "3\n" + exit

	// act
	output := runSession(t, input, cli.WithCurrency(currency.EUR))

	// assert
	assert.Contains(t, output, "Entry Fee (EUR): ")
	assert.Contains(t, output, "Total Revenue: 12.50 EUR")
}

func Test_Session_Run_StopsOnCanceledContext(t *testing.T) {
	// arrange
	handlers, err := cli.NewHandlers(fixtures.MemoryStore(t), cli.Observability{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	session := cli.NewSession(handlers, strings.NewReader(exit), &out)

	// act
	err = session.Run(ctx)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

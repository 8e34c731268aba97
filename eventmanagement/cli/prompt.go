package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

const maxRetries = 3

// prompter reads one answer per line. Every read gives up after maxRetries invalid answers
// or when the input is exhausted, which is remembered in closed.
type prompter struct {
	in     *bufio.Scanner
	out    io.Writer
	closed bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) println(a ...any) {
	_, _ = fmt.Fprintln(p.out, a...)
}

func (p *prompter) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.out, format, a...)
}

func (p *prompter) readLine(prompt string) (string, bool) {
	p.printf("%s", prompt)

	if p.closed || !p.in.Scan() {
		p.closed = true
		return "", false
	}

	return strings.TrimSpace(p.in.Text()), true
}

// retry asks until parse accepts the answer. parse returns the hint printed before the next attempt.
func retry[T any](p *prompter, prompt string, parse func(input string) (T, string)) (T, bool) {
	var zero T

	for range maxRetries {
		input, ok := p.readLine(prompt)
		if !ok {
			return zero, false
		}

		value, hint := parse(input)
		if hint == "" {
			return value, true
		}

		p.println(hint)
	}

	return zero, false
}

func (p *prompter) readInt(prompt string, minValue, maxValue int) (int, bool) {
	return retry(p, prompt, func(input string) (int, string) {
		value, err := strconv.Atoi(input)
		if err != nil {
			return 0, "Invalid input. Please enter a valid number."
		}

		if value < minValue || value > maxValue {
			return 0, fmt.Sprintf("Please enter a number between %d and %d.", minValue, maxValue)
		}

		return value, ""
	})
}

func (p *prompter) readPositiveInt(prompt string) (int, bool) {
	return p.readInt(prompt, 1, math.MaxInt32)
}

func (p *prompter) readNonEmpty(prompt string) (string, bool) {
	return retry(p, prompt, func(input string) (string, string) {
		if input == "" {
			return "", "Input cannot be empty. Please try again."
		}

		return input, ""
	})
}

func (p *prompter) readDateTime(prompt string, location *time.Location) (time.Time, bool) {
	return retry(p, prompt, func(input string) (time.Time, string) {
		value, err := time.ParseInLocation(domain.DateTimeLayout, input, location)
		if err != nil {
			return time.Time{}, "Invalid date format. Please use yyyy-MM-dd HH:mm (e.g., 2025-04-15 14:30)."
		}

		return value, ""
	})
}

func (p *prompter) readPositiveAmount(prompt string) (decimal.Decimal, bool) {
	return retry(p, prompt, func(input string) (decimal.Decimal, string) {
		value, err := decimal.NewFromString(input)
		if err != nil {
			return decimal.Zero, "Invalid number format. Please enter a valid positive number (e.g., 10.50)."
		}

		if !value.IsPositive() {
			return decimal.Zero, "Please enter a positive number."
		}

		return value, ""
	})
}

func (p *prompter) readList(prompt string) ([]string, bool) {
	return retry(p, prompt, func(input string) ([]string, string) {
		items := splitList(input)
		if len(items) == 0 {
			return nil, "List cannot be empty. Please provide at least one item."
		}

		return items, ""
	})
}

func (p *prompter) readEmail(prompt string) (string, bool) {
	return retry(p, prompt, func(input string) (string, string) {
		if !strings.Contains(input, "@") {
			return "", "Please enter a valid email address containing '@'."
		}

		return input, ""
	})
}

func (p *prompter) readStatus(prompt string) (domain.RegistrationStatus, bool) {
	return retry(p, prompt, func(input string) (domain.RegistrationStatus, string) {
		status, err := domain.ParseRegistrationStatus(input)
		if err != nil {
			return "", "Please enter one of PENDING, CONFIRMED, CANCELLED, ATTENDED."
		}

		return status, ""
	})
}

func splitList(input string) []string {
	var items []string

	for _, item := range strings.Split(input, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

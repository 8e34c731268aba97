package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

var baseTime = time.Date(2025, 4, 15, 14, 30, 0, 0, time.UTC)

func validDetails() domain.EventDetails {
	return domain.EventDetails{
		ID:           domain.GenerateEventID(),
		Name:         "Summer Jam",
		StartTime:    baseTime,
		EndTime:      baseTime.Add(3 * time.Hour),
		Location:     domain.Location{Name: "Arena", Address: "Main Street 1"},
		MaxAttendees: 100,
	}
}

func usd(t *testing.T, amount string) domain.Money {
	t.Helper()

	m, err := domain.ParseMoney(amount, "USD")
	require.NoError(t, err)

	return m
}

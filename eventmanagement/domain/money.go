package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used when no currency is configured and for the sum of no amounts.
var DefaultCurrency = currency.USD

// Money is a non-negative amount in an ISO 4217 currency.
type Money struct {
	amount   decimal.Decimal
	currency currency.Unit
	valid    bool
}

// NewMoney validates amount and unit.
func NewMoney(amount decimal.Decimal, unit currency.Unit) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}

	if _, err := currency.ParseISO(unit.String()); err != nil || unit.String() == "XXX" {
		return Money{}, ErrInvalidCurrency
	}

	return Money{amount: amount, currency: unit, valid: true}, nil
}

// ParseMoney parses a decimal amount like "10.50" and a currency code like "EUR".
func ParseMoney(amount string, currencyCode string) (Money, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, ErrInvalidAmount
	}

	unit, err := ParseCurrency(currencyCode)
	if err != nil {
		return Money{}, err
	}

	return NewMoney(value, unit)
}

// ParseCurrency parses an ISO 4217 code case-insensitively.
func ParseCurrency(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil || unit.String() == "XXX" {
		return currency.Unit{}, ErrInvalidCurrency
	}

	return unit, nil
}

// ZeroMoney returns 0 in unit.
func ZeroMoney(unit currency.Unit) Money {
	return Money{amount: decimal.Zero, currency: unit, valid: true}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() currency.Unit {
	return m.currency
}

func (m Money) CurrencyCode() string {
	return m.currency.String()
}

// IsValid is false for the zero value.
func (m Money) IsValid() bool {
	return m.valid
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equal(other Money) bool {
	return m.valid == other.valid && m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the amount with two decimal places followed by the currency code, e.g. "10.50 USD".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency.String()
}

package operations

import (
	"errors"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/domain"
)

var (
	ErrCurrencyMismatch = errors.New("all amounts must have the same currency")
	ErrNegativeAmount   = errors.New("result would be negative")
	ErrInvalidMoney     = errors.New("money is not valid")
)

func AddMoney(a, b domain.Money) (domain.Money, error) {
	if err := sameCurrency(a, b); err != nil {
		return domain.Money{}, err
	}

	return domain.NewMoney(a.Amount().Add(b.Amount()), a.Currency())
}

// SubtractMoney fails with ErrNegativeAmount when b is larger than a.
func SubtractMoney(a, b domain.Money) (domain.Money, error) {
	if err := sameCurrency(a, b); err != nil {
		return domain.Money{}, err
	}

	result := a.Amount().Sub(b.Amount())
	if result.IsNegative() {
		return domain.Money{}, ErrNegativeAmount
	}

	return domain.NewMoney(result, a.Currency())
}

// SumMoney adds all amounts, the sum of no amounts is 0 in domain.DefaultCurrency.
func SumMoney(amounts []domain.Money) (domain.Money, error) {
	if len(amounts) == 0 {
		return domain.ZeroMoney(domain.DefaultCurrency), nil
	}

	total := domain.ZeroMoney(amounts[0].Currency())
	for _, amount := range amounts {
		var err error
		if total, err = AddMoney(total, amount); err != nil {
			return domain.Money{}, err
		}
	}

	return total, nil
}

func sameCurrency(a, b domain.Money) error {
	if !a.IsValid() || !b.IsValid() {
		return ErrInvalidMoney
	}

	if a.Currency() != b.Currency() {
		return ErrCurrencyMismatch
	}

	return nil
}

package bank

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("bank not found")

type Bank struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Code    string    `json:"code,omitempty"`
	Country string    `json:"country,omitempty"`
	Active  bool      `json:"active"`
}

// Balance is the amount a bank holds in one currency.
type Balance struct {
	BankID   uuid.UUID       `json:"bankId"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

func (b Balance) is(bankID uuid.UUID, currency string) bool {
	return b.BankID == bankID && b.Currency == currency
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

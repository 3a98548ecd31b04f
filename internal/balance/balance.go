package balance

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("balance not found")

// Balance is a named running total in one currency, owned by a register session.
type Balance struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currency_code"`
	Amount       decimal.Decimal `json:"amount"`
	Active       bool            `json:"active"`
	SessionID    uuid.UUID       `json:"caja_status_id"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

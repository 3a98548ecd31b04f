package caja

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAlreadyOpen is returned when opening while another session is open.
	ErrAlreadyOpen = errors.New("a register session is already open")
	// ErrNoOpenSession is returned by the repository when no session is open.
	ErrNoOpenSession = errors.New("no open register session")
	// ErrNotOpen is returned when closing without a local open session.
	ErrNotOpen    = errors.New("register session is not open")
	ErrNoOperator = errors.New("no operator logged in")
)

// Session is a register ("caja") session.
type Session struct {
	ID       uuid.UUID  `json:"id"`
	IsOpen   bool       `json:"isOpen"`
	OpenedBy *uuid.UUID `json:"openedBy,omitempty"`
	OpenedAt *time.Time `json:"openedAt,omitempty"`
	ClosedBy *uuid.UUID `json:"closedBy,omitempty"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`
}

// Snapshot is the final amount of a balance when its session closed.
type Snapshot struct {
	SessionID   uuid.UUID       `json:"sessionId"`
	BalanceID   uuid.UUID       `json:"balanceId"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// HistoryBalance is a balance of a past session with its closing amount,
// or its live amount when the session has no snapshot for it.
type HistoryBalance struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
	FinalAmount  decimal.Decimal `json:"finalAmount"`
}

type HistoryEntry struct {
	Session  Session          `json:"session"`
	Balances []HistoryBalance `json:"balances"`
}

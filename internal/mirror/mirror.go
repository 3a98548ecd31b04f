// Package mirror keeps a denormalized copy of the mutable entities in a
// shared real-time document. Local changes are pushed after a quiet period;
// remote changes are merged back into the same containers.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/currency"
	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
	"github.com/MrJamesThe3rd/cambio/internal/transaction"
)

var (
	ErrInvalidState    = errors.New("invalid mirror state")
	ErrNotSerializable = errors.New("record is not serializable")
)

// Gateway reads, overwrites and watches the mirror document.
type Gateway interface {
	Write(ctx context.Context, doc []byte) error
	// Read returns nil when no document exists.
	Read(ctx context.Context) ([]byte, error)
	Subscribe(ctx context.Context, fn func(doc []byte)) (func() error, error)
}

type Settings struct {
	Currencies     []currency.Currency           `json:"currencies"`
	Cryptos        []currency.Crypto             `json:"cryptos"`
	OperationTypes []operationtype.OperationType `json:"operationTypes"`
}

// ProjectState is the mirror document.
type ProjectState struct {
	Balances     []balance.Balance         `json:"balances"`
	Transactions []transaction.Transaction `json:"transactions"`
	Settings     Settings                  `json:"settings"`
	LastUpdated  time.Time                 `json:"lastUpdated"`
	Origin       string                    `json:"origin,omitempty"`
}

// Validate checks the document shape before it is written.
func (ps *ProjectState) Validate() error {
	switch {
	case ps.Balances == nil:
		return fmt.Errorf("%w: balances missing", ErrInvalidState)
	case ps.Transactions == nil:
		return fmt.Errorf("%w: transactions missing", ErrInvalidState)
	case ps.Settings.Currencies == nil, ps.Settings.Cryptos == nil, ps.Settings.OperationTypes == nil:
		return fmt.Errorf("%w: settings incomplete", ErrInvalidState)
	case ps.LastUpdated.IsZero():
		return fmt.Errorf("%w: lastUpdated not set", ErrInvalidState)
	}

	return nil
}

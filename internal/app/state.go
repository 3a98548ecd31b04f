package app

import (
	"fmt"

	"github.com/MrJamesThe3rd/cambio/internal/auth"
	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/bank"
	"github.com/MrJamesThe3rd/cambio/internal/caja"
	"github.com/MrJamesThe3rd/cambio/internal/client"
	"github.com/MrJamesThe3rd/cambio/internal/currency"
	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
	"github.com/MrJamesThe3rd/cambio/internal/operator"
	"github.com/MrJamesThe3rd/cambio/internal/state"
	"github.com/MrJamesThe3rd/cambio/internal/transaction"
)

// State is every container the services and synchronizers share.
type State struct {
	Auth           *state.Value[auth.Session]
	Session        *state.Value[caja.Session]
	Balances       *state.Container[balance.Balance]
	Transactions   *state.Container[transaction.Transaction]
	Clients        *state.Container[client.Client]
	Currencies     *state.Container[currency.Currency]
	Cryptos        *state.Container[currency.Crypto]
	OperationTypes *state.Container[operationtype.OperationType]
	Operators      *state.Container[operator.Operator]
	Banks          *state.Container[bank.Bank]
	BankBalances   *state.Container[bank.Balance]
}

func NewState() *State {
	return &State{
		Auth:           state.NewValue(auth.Session{}),
		Session:        state.NewValue(caja.Session{}),
		Balances:       state.NewContainer[balance.Balance](),
		Transactions:   state.NewContainer[transaction.Transaction](),
		Clients:        state.NewContainer[client.Client](),
		Currencies:     state.NewContainer[currency.Currency](),
		Cryptos:        state.NewContainer[currency.Crypto](),
		OperationTypes: state.NewContainer[operationtype.OperationType](),
		Operators:      state.NewContainer[operator.Operator](),
		Banks:          state.NewContainer[bank.Bank](),
		BankBalances:   state.NewContainer[bank.Balance](),
	}
}

type binding struct {
	key     string
	version int
	parts   map[string]state.Persistable
}

func (s *State) bindings() []binding {
	return []binding{
		{"auth-storage", 10, map[string]state.Persistable{"session": s.Auth}},
		{"balance-storage", 5, map[string]state.Persistable{"balances": s.Balances}},
		{"caja-storage", 10, map[string]state.Persistable{"session": s.Session}},
		{"client-storage", 2, map[string]state.Persistable{"clients": s.Clients}},
		{"currency-storage", 2, map[string]state.Persistable{"currencies": s.Currencies, "cryptos": s.Cryptos}},
		{"transaction-storage", 5, map[string]state.Persistable{"transactions": s.Transactions}},
		{"bank-storage", 4, map[string]state.Persistable{"banks": s.Banks}},
		{"bank-balance-storage", 3, map[string]state.Persistable{"balances": s.BankBalances}},
		{"operator-storage", 8, map[string]state.Persistable{"operators": s.Operators}},
		{"operation-type-storage", 1, map[string]state.Persistable{"operationTypes": s.OperationTypes}},
	}
}

// Persist restores every container from disk and keeps the files current.
// The returned func stops saving.
func (s *State) Persist(disk *state.Disk) (func(), error) {
	var stops []func()

	stopAll := func() {
		for _, stop := range stops {
			stop()
		}
	}

	for _, b := range s.bindings() {
		stop, err := disk.Bind(b.key, b.version, b.parts)
		if err != nil {
			stopAll()
			return nil, fmt.Errorf("binding %s: %w", b.key, err)
		}

		stops = append(stops, stop)
	}

	return stopAll, nil
}

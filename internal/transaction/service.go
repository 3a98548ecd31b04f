package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/state"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// CreateTransaction stores tx and, when posting is non-nil, applies the
	// posting to its balance in the same database transaction. The new
	// balance amount is written back into posting.Result.
	CreateTransaction(ctx context.Context, tx *Transaction, posting *Posting) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

// Posting is the balance movement caused by a transaction.
type Posting struct {
	BalanceID uuid.UUID
	Delta     decimal.Decimal
	Result    decimal.Decimal
}

type Service struct {
	repo         Repository
	transactions *state.Container[Transaction]
	balances     *state.Container[balance.Balance]
}

func NewService(repo Repository, transactions *state.Container[Transaction], balances *state.Container[balance.Balance]) *Service {
	return &Service{repo: repo, transactions: transactions, balances: balances}
}

type CreateParams struct {
	ClientID          uuid.UUID
	OperatorID        uuid.UUID
	OperationType     string
	CurrencyOperation CurrencyOperation
	Amount            decimal.Decimal
	NetAmount         *decimal.Decimal
	CalculatedAmount  *decimal.Decimal
	ExchangeRate      *decimal.Decimal
	BalanceID         *uuid.UUID
	Description       string
	Date              time.Time
	Deductions        *Deductions
}

type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		ID:                uuid.New(),
		ClientID:          params.ClientID,
		OperatorID:        params.OperatorID,
		OperationType:     params.OperationType,
		CurrencyOperation: params.CurrencyOperation,
		Amount:            params.Amount,
		NetAmount:         params.NetAmount,
		CalculatedAmount:  params.CalculatedAmount,
		ExchangeRate:      params.ExchangeRate,
		BalanceID:         params.BalanceID,
		Description:       params.Description,
		Date:              params.Date,
		Deductions:        params.Deductions,
	}

	var posting *Posting
	if delta, ok := Adjustment(tx); ok {
		posting = &Posting{BalanceID: *tx.BalanceID, Delta: delta}
	}

	if err := s.repo.CreateTransaction(ctx, tx, posting); err != nil {
		slog.Error("failed to add transaction", "error", err)
		return nil, err
	}

	if posting != nil {
		s.balances.Update(state.SourceLocal, func(items []balance.Balance) []balance.Balance {
			for i := range items {
				if items[i].ID == posting.BalanceID {
					items[i].Amount = posting.Result
				}
			}

			return items
		})
	}

	s.transactions.Update(state.SourceLocal, func(items []Transaction) []Transaction {
		return append([]Transaction{*tx}, items...)
	})

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// Query reads transactions from the database.
func (s *Service) Query(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// List returns the locally known transactions, newest first.
func (s *Service) List() []Transaction {
	return s.transactions.All()
}

// ByDate returns local transactions dated within [start, end].
func (s *Service) ByDate(start, end time.Time) []Transaction {
	var out []Transaction

	for _, tx := range s.transactions.All() {
		if !tx.Date.Before(start) && !tx.Date.After(end) {
			out = append(out, tx)
		}
	}

	return out
}

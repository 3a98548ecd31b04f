package bank

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/state"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=bank
type Repository interface {
	CreateBank(ctx context.Context, b *Bank) error
	ListBanks(ctx context.Context) ([]*Bank, error)
	UpdateBank(ctx context.Context, b *Bank) error
	DeleteBank(ctx context.Context, id uuid.UUID) error
	ListBalances(ctx context.Context) ([]*Balance, error)
	// SetBalance stores amount for (bankID, currency), creating the row if needed.
	SetBalance(ctx context.Context, bankID uuid.UUID, currency string, amount decimal.Decimal) error
	// AdjustBalance adds delta to the stored amount, starting from zero, and returns the result.
	AdjustBalance(ctx context.Context, bankID uuid.UUID, currency string, delta decimal.Decimal) (decimal.Decimal, error)
}

type Service struct {
	repo     Repository
	banks    *state.Container[Bank]
	balances *state.Container[Balance]
}

func NewService(repo Repository, banks *state.Container[Bank], balances *state.Container[Balance]) *Service {
	return &Service{repo: repo, banks: banks, balances: balances}
}

type Params struct {
	Name    string
	Code    string
	Country string
	Active  bool
}

// Load replaces the local banks and bank balances with the stored ones.
func (s *Service) Load(ctx context.Context) error {
	banks, err := s.repo.ListBanks(ctx)
	if err != nil {
		return fmt.Errorf("loading banks: %w", err)
	}

	balances, err := s.repo.ListBalances(ctx)
	if err != nil {
		return fmt.Errorf("loading bank balances: %w", err)
	}

	s.banks.Replace(state.SourceRefresh, deref(banks))
	s.balances.Replace(state.SourceRefresh, deref(balances))

	return nil
}

func (s *Service) List() []Bank {
	return s.banks.All()
}

func (s *Service) Balances() []Balance {
	return s.balances.All()
}

// Balance returns the local amount a bank holds in currency, zero when unknown.
func (s *Service) Balance(bankID uuid.UUID, currency string) decimal.Decimal {
	currency = normalizeCurrency(currency)

	b, ok := s.balances.Find(func(b Balance) bool { return b.is(bankID, currency) })
	if !ok {
		return decimal.Zero
	}

	return b.Amount
}

func (s *Service) Create(ctx context.Context, params Params) (*Bank, error) {
	b := &Bank{ID: uuid.New(), Name: params.Name, Code: params.Code, Country: params.Country, Active: params.Active}

	if err := s.repo.CreateBank(ctx, b); err != nil {
		slog.Error("failed to add bank", "error", err)
		return nil, err
	}

	s.banks.Update(state.SourceLocal, func(items []Bank) []Bank {
		return append(items, *b)
	})

	return b, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Bank, error) {
	b := &Bank{ID: id, Name: params.Name, Code: params.Code, Country: params.Country, Active: params.Active}

	if err := s.repo.UpdateBank(ctx, b); err != nil {
		slog.Error("failed to edit bank", "bank_id", id, "error", err)
		return nil, err
	}

	s.banks.Update(state.SourceLocal, func(items []Bank) []Bank {
		for i := range items {
			if items[i].ID == id {
				items[i] = *b
			}
		}

		return items
	})

	return b, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBank(ctx, id); err != nil {
		slog.Error("failed to delete bank", "bank_id", id, "error", err)
		return err
	}

	s.banks.Update(state.SourceLocal, func(items []Bank) []Bank {
		return slices.DeleteFunc(items, func(b Bank) bool { return b.ID == id })
	})
	s.balances.Update(state.SourceLocal, func(items []Balance) []Balance {
		return slices.DeleteFunc(items, func(b Balance) bool { return b.BankID == id })
	})

	return nil
}

func (s *Service) SetBalance(ctx context.Context, bankID uuid.UUID, currency string, amount decimal.Decimal) (*Balance, error) {
	currency = normalizeCurrency(currency)

	if err := s.repo.SetBalance(ctx, bankID, currency, amount); err != nil {
		slog.Error("failed to set bank balance", "bank_id", bankID, "currency", currency, "error", err)
		return nil, err
	}

	b := Balance{BankID: bankID, Currency: currency, Amount: amount}
	s.upsertBalance(b)

	return &b, nil
}

func (s *Service) AdjustBalance(ctx context.Context, bankID uuid.UUID, currency string, delta decimal.Decimal) (*Balance, error) {
	currency = normalizeCurrency(currency)

	amount, err := s.repo.AdjustBalance(ctx, bankID, currency, delta)
	if err != nil {
		slog.Error("failed to update bank balance", "bank_id", bankID, "currency", currency, "error", err)
		return nil, err
	}

	b := Balance{BankID: bankID, Currency: currency, Amount: amount}
	s.upsertBalance(b)

	return &b, nil
}

func (s *Service) upsertBalance(b Balance) {
	s.balances.Update(state.SourceLocal, func(items []Balance) []Balance {
		if i := slices.IndexFunc(items, func(x Balance) bool { return x.is(b.BankID, b.Currency) }); i >= 0 {
			items[i] = b
			return items
		}

		return append(items, b)
	})
}

func deref[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}

	return out
}

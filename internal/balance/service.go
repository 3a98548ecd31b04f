package balance

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/state"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=balance
type Repository interface {
	CreateBalance(ctx context.Context, b *Balance) error
	GetBalance(ctx context.Context, id uuid.UUID) (*Balance, error)
	ListBalances(ctx context.Context) ([]*Balance, error)
	UpdateBalance(ctx context.Context, b *Balance) error
	// AdjustAmount adds delta to the stored amount and returns the new amount.
	AdjustAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
	DeleteBalance(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo     Repository
	balances *state.Container[Balance]
}

func NewService(repo Repository, balances *state.Container[Balance]) *Service {
	return &Service{repo: repo, balances: balances}
}

type CreateParams struct {
	Name         string
	CurrencyCode string
	Amount       decimal.Decimal
	SessionID    uuid.UUID
}

type UpdateParams struct {
	Name         *string
	CurrencyCode *string
	Amount       *decimal.Decimal
	Active       *bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Balance, error) {
	b := &Balance{
		ID:           uuid.New(),
		Name:         params.Name,
		CurrencyCode: params.CurrencyCode,
		Amount:       params.Amount,
		Active:       true,
		SessionID:    params.SessionID,
	}

	if err := s.repo.CreateBalance(ctx, b); err != nil {
		slog.Error("failed to add balance", "error", err)
		return nil, err
	}

	s.balances.Update(state.SourceLocal, func(items []Balance) []Balance {
		return append(items, *b)
	})

	return b, nil
}

func (s *Service) List() []Balance {
	return s.balances.All()
}

// Get looks the balance up in local state.
func (s *Service) Get(id uuid.UUID) (Balance, bool) {
	return s.balances.Find(func(b Balance) bool { return b.ID == id })
}

// Adjust posts a signed delta against the balance.
func (s *Service) Adjust(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*Balance, error) {
	amount, err := s.repo.AdjustAmount(ctx, id, delta)
	if err != nil {
		slog.Error("failed to update balance", "balance_id", id, "error", err)
		return nil, err
	}

	var updated *Balance

	s.balances.Update(state.SourceLocal, func(items []Balance) []Balance {
		for i := range items {
			if items[i].ID == id {
				items[i].Amount = amount
				updated = new(items[i])
			}
		}

		return items
	})

	if updated == nil {
		return s.reload(ctx, id)
	}

	return updated, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Balance, error) {
	b, err := s.repo.GetBalance(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		b.Name = *params.Name
	}

	if params.CurrencyCode != nil {
		b.CurrencyCode = *params.CurrencyCode
	}

	if params.Amount != nil {
		b.Amount = *params.Amount
	}

	if params.Active != nil {
		b.Active = *params.Active
	}

	if err := s.repo.UpdateBalance(ctx, b); err != nil {
		slog.Error("failed to edit balance", "balance_id", id, "error", err)
		return nil, err
	}

	s.upsert(*b)

	return b, nil
}

func (s *Service) ToggleActive(ctx context.Context, id uuid.UUID) (*Balance, error) {
	b, err := s.repo.GetBalance(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Active = !b.Active

	if err := s.repo.UpdateBalance(ctx, b); err != nil {
		slog.Error("failed to toggle balance status", "balance_id", id, "error", err)
		return nil, err
	}

	s.upsert(*b)

	return b, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBalance(ctx, id); err != nil {
		slog.Error("failed to delete balance", "balance_id", id, "error", err)
		return err
	}

	s.balances.Update(state.SourceLocal, func(items []Balance) []Balance {
		return slices.DeleteFunc(items, func(b Balance) bool { return b.ID == id })
	})

	return nil
}

func (s *Service) reload(ctx context.Context, id uuid.UUID) (*Balance, error) {
	b, err := s.repo.GetBalance(ctx, id)
	if err != nil {
		return nil, err
	}

	s.upsert(*b)

	return b, nil
}

func (s *Service) upsert(b Balance) {
	s.balances.Update(state.SourceLocal, func(items []Balance) []Balance {
		for i := range items {
			if items[i].ID == b.ID {
				items[i] = b
				return items
			}
		}

		return append(items, b)
	})
}

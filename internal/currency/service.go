package currency

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/state"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=currency
type Repository interface {
	CreateRow(ctx context.Context, r *Row) error
	GetRow(ctx context.Context, id uuid.UUID) (*Row, error)
	ListRows(ctx context.Context) ([]*Row, error)
	UpdateRow(ctx context.Context, r *Row) error
	DeleteRow(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo       Repository
	currencies *state.Container[Currency]
	cryptos    *state.Container[Crypto]
}

func NewService(repo Repository, currencies *state.Container[Currency], cryptos *state.Container[Crypto]) *Service {
	return &Service{repo: repo, currencies: currencies, cryptos: cryptos}
}

type CurrencyParams struct {
	Code     string
	Name     string
	Symbol   string
	BuyRate  decimal.Decimal
	SellRate decimal.Decimal
	Active   bool
}

type CryptoParams struct {
	Code    string
	Name    string
	Network string
	Active  bool
}

func (s *Service) Currencies() []Currency {
	return s.currencies.All()
}

func (s *Service) Cryptos() []Crypto {
	return s.cryptos.All()
}

func (s *Service) CreateCurrency(ctx context.Context, params CurrencyParams) (*Currency, error) {
	return s.saveCurrency(ctx, uuid.Nil, params)
}

func (s *Service) UpdateCurrency(ctx context.Context, id uuid.UUID, params CurrencyParams) (*Currency, error) {
	return s.saveCurrency(ctx, id, params)
}

func (s *Service) saveCurrency(ctx context.Context, id uuid.UUID, params CurrencyParams) (*Currency, error) {
	code, err := NormalizeFiatCode(params.Code)
	if err != nil {
		return nil, err
	}

	c := Currency{
		ID:       id,
		Code:     code,
		Name:     params.Name,
		Symbol:   params.Symbol,
		BuyRate:  params.BuyRate,
		SellRate: params.SellRate,
		Active:   params.Active,
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
		err = s.repo.CreateRow(ctx, currencyRow(c))
	} else {
		err = s.repo.UpdateRow(ctx, currencyRow(c))
	}

	if err != nil {
		slog.Error("failed to save currency", "code", code, "error", err)
		return nil, err
	}

	upsert(s.currencies, c, func(x Currency) bool { return x.ID == c.ID })

	return &c, nil
}

func (s *Service) CreateCrypto(ctx context.Context, params CryptoParams) (*Crypto, error) {
	return s.saveCrypto(ctx, uuid.Nil, params)
}

func (s *Service) UpdateCrypto(ctx context.Context, id uuid.UUID, params CryptoParams) (*Crypto, error) {
	return s.saveCrypto(ctx, id, params)
}

func (s *Service) saveCrypto(ctx context.Context, id uuid.UUID, params CryptoParams) (*Crypto, error) {
	code, err := NormalizeCryptoCode(params.Code)
	if err != nil {
		return nil, err
	}

	c := Crypto{ID: id, Code: code, Name: params.Name, Network: params.Network, Active: params.Active}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
		err = s.repo.CreateRow(ctx, cryptoRow(c))
	} else {
		err = s.repo.UpdateRow(ctx, cryptoRow(c))
	}

	if err != nil {
		slog.Error("failed to save crypto", "code", code, "error", err)
		return nil, err
	}

	upsert(s.cryptos, c, func(x Crypto) bool { return x.ID == c.ID })

	return &c, nil
}

func (s *Service) DeleteCurrency(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRow(ctx, id); err != nil {
		slog.Error("failed to delete currency", "currency_id", id, "error", err)
		return err
	}

	s.currencies.Update(state.SourceLocal, func(items []Currency) []Currency {
		return slices.DeleteFunc(items, func(c Currency) bool { return c.ID == id })
	})

	return nil
}

func (s *Service) DeleteCrypto(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRow(ctx, id); err != nil {
		slog.Error("failed to delete crypto", "crypto_id", id, "error", err)
		return err
	}

	s.cryptos.Update(state.SourceLocal, func(items []Crypto) []Crypto {
		return slices.DeleteFunc(items, func(c Crypto) bool { return c.ID == id })
	})

	return nil
}

func upsert[T any](c *state.Container[T], v T, match func(T) bool) {
	c.Update(state.SourceLocal, func(items []T) []T {
		if i := slices.IndexFunc(items, match); i >= 0 {
			items[i] = v
			return items
		}

		return append(items, v)
	})
}

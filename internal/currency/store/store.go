package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/currency"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectRowColumns = `id, type, code, name, symbol, buy_rate, sell_rate, network, active`

func scanRow(s scanner) (*currency.Row, error) {
	var r currency.Row

	var typ string

	var symbol, network sql.NullString

	var buyRate, sellRate decimal.NullDecimal

	if err := s.Scan(&r.ID, &typ, &r.Code, &r.Name, &symbol, &buyRate, &sellRate, &network, &r.Active); err != nil {
		return nil, err
	}

	r.Type = currency.Type(typ)
	r.Symbol = symbol.String
	r.Network = network.String
	r.BuyRate = buyRate.Decimal
	r.SellRate = sellRate.Decimal

	return &r, nil
}

// rowArgs returns the nullable columns for r; rates and symbol only apply to fiat, network to crypto.
func rowArgs(r *currency.Row) (symbol, network sql.NullString, buy, sell decimal.NullDecimal) {
	if r.Type == currency.TypeFiat {
		symbol = sql.NullString{String: r.Symbol, Valid: r.Symbol != ""}
		buy = decimal.NullDecimal{Decimal: r.BuyRate, Valid: true}
		sell = decimal.NullDecimal{Decimal: r.SellRate, Valid: true}

		return
	}

	network = sql.NullString{String: r.Network, Valid: r.Network != ""}

	return
}

func (s *Store) CreateRow(ctx context.Context, r *currency.Row) error {
	query := `
		INSERT INTO currencies (id, type, code, name, symbol, buy_rate, sell_rate, network, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	symbol, network, buy, sell := rowArgs(r)

	if _, err := s.db.ExecContext(ctx, query, r.ID, r.Type, r.Code, r.Name, symbol, buy, sell, network, r.Active); err != nil {
		return fmt.Errorf("creating currency: %w", err)
	}

	return nil
}

func (s *Store) GetRow(ctx context.Context, id uuid.UUID) (*currency.Row, error) {
	query := `SELECT ` + selectRowColumns + ` FROM currencies WHERE id = $1`

	r, err := scanRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, currency.ErrNotFound
		}

		return nil, fmt.Errorf("getting currency: %w", err)
	}

	return r, nil
}

// ListRows returns fiat and crypto rows together, ordered by code.
func (s *Store) ListRows(ctx context.Context) ([]*currency.Row, error) {
	query := `SELECT ` + selectRowColumns + ` FROM currencies WHERE type IN ('FIAT', 'CRYPTO') ORDER BY code ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing currencies: %w", err)
	}
	defer rows.Close()

	var out []*currency.Row

	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning currency: %w", err)
		}

		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating currency rows: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateRow(ctx context.Context, r *currency.Row) error {
	query := `
		UPDATE currencies
		SET code = $1, name = $2, symbol = $3, buy_rate = $4, sell_rate = $5, network = $6, active = $7
		WHERE id = $8 AND type = $9
	`

	symbol, network, buy, sell := rowArgs(r)

	res, err := s.db.ExecContext(ctx, query, r.Code, r.Name, symbol, buy, sell, network, r.Active, r.ID, r.Type)
	if err != nil {
		return fmt.Errorf("updating currency: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return currency.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteRow(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM currencies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting currency: %w", err)
	}

	return nil
}

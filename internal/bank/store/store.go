package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/bank"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateBank(ctx context.Context, b *bank.Bank) error {
	query := `INSERT INTO banks (id, name, code, country, active) VALUES ($1, $2, $3, $4, $5)`

	if _, err := s.db.ExecContext(ctx, query, b.ID, b.Name, nullString(b.Code), nullString(b.Country), b.Active); err != nil {
		return fmt.Errorf("creating bank: %w", err)
	}

	return nil
}

func (s *Store) ListBanks(ctx context.Context) ([]*bank.Bank, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, code, country, active FROM banks ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing banks: %w", err)
	}
	defer rows.Close()

	var out []*bank.Bank

	for rows.Next() {
		var (
			b             bank.Bank
			code, country sql.NullString
		)

		if err := rows.Scan(&b.ID, &b.Name, &code, &country, &b.Active); err != nil {
			return nil, fmt.Errorf("scanning bank: %w", err)
		}

		b.Code = code.String
		b.Country = country.String
		out = append(out, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bank rows: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateBank(ctx context.Context, b *bank.Bank) error {
	query := `UPDATE banks SET name = $1, code = $2, country = $3, active = $4 WHERE id = $5`

	res, err := s.db.ExecContext(ctx, query, b.Name, nullString(b.Code), nullString(b.Country), b.Active, b.ID)
	if err != nil {
		return fmt.Errorf("updating bank: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return bank.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteBank(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM banks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting bank: %w", err)
	}

	return nil
}

func (s *Store) ListBalances(ctx context.Context) ([]*bank.Balance, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bank_id, currency, amount FROM bank_balances ORDER BY bank_id, currency`)
	if err != nil {
		return nil, fmt.Errorf("listing bank balances: %w", err)
	}
	defer rows.Close()

	var out []*bank.Balance

	for rows.Next() {
		var b bank.Balance
		if err := rows.Scan(&b.BankID, &b.Currency, &b.Amount); err != nil {
			return nil, fmt.Errorf("scanning bank balance: %w", err)
		}

		out = append(out, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bank balance rows: %w", err)
	}

	return out, nil
}

func (s *Store) SetBalance(ctx context.Context, bankID uuid.UUID, currency string, amount decimal.Decimal) error {
	query := `
		INSERT INTO bank_balances (bank_id, currency, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (bank_id, currency) DO UPDATE SET amount = EXCLUDED.amount
	`

	if _, err := s.db.ExecContext(ctx, query, bankID, currency, amount); err != nil {
		return fmt.Errorf("setting bank balance: %w", err)
	}

	return nil
}

func (s *Store) AdjustBalance(ctx context.Context, bankID uuid.UUID, currency string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO bank_balances (bank_id, currency, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (bank_id, currency) DO UPDATE SET amount = bank_balances.amount + EXCLUDED.amount
		RETURNING amount
	`

	var amount decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, bankID, currency, delta).Scan(&amount); err != nil {
		return decimal.Zero, fmt.Errorf("adjusting bank balance: %w", err)
	}

	return amount, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
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

// Expected column order: id, name, currency_code, amount, active, caja_status_id, created_at, updated_at
func scanBalance(s scanner) (*balance.Balance, error) {
	var b balance.Balance

	var sessionID uuid.NullUUID

	if err := s.Scan(
		&b.ID, &b.Name, &b.CurrencyCode, &b.Amount, &b.Active, &sessionID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.SessionID = sessionID.UUID

	return &b, nil
}

const selectBalanceColumns = `id, name, currency_code, amount, active, caja_status_id, created_at, updated_at`

func nullSession(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

func (s *Store) CreateBalance(ctx context.Context, b *balance.Balance) error {
	query := `
		INSERT INTO balances (id, name, currency_code, amount, active, caja_status_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.ID, b.Name, b.CurrencyCode, b.Amount, b.Active, nullSession(b.SessionID),
	).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating balance: %w", err)
	}

	return nil
}

func (s *Store) GetBalance(ctx context.Context, id uuid.UUID) (*balance.Balance, error) {
	query := `SELECT ` + selectBalanceColumns + ` FROM balances WHERE id = $1`

	b, err := scanBalance(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, balance.ErrNotFound
		}

		return nil, fmt.Errorf("getting balance: %w", err)
	}

	return b, nil
}

func (s *Store) ListBalances(ctx context.Context) ([]*balance.Balance, error) {
	query := `SELECT ` + selectBalanceColumns + ` FROM balances ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing balances: %w", err)
	}
	defer rows.Close()

	var out []*balance.Balance

	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning balance: %w", err)
		}

		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating balances: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateBalance(ctx context.Context, b *balance.Balance) error {
	query := `
		UPDATE balances
		SET name = $1, currency_code = $2, amount = $3, active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, b.Name, b.CurrencyCode, b.Amount, b.Active, b.ID).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return balance.ErrNotFound
		}

		return fmt.Errorf("updating balance: %w", err)
	}

	return nil
}

// AdjustAmount increments the stored amount in place and returns the result.
func (s *Store) AdjustAmount(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE balances
		SET amount = amount + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING amount
	`

	var amount decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, delta, id).Scan(&amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, balance.ErrNotFound
		}

		return decimal.Zero, fmt.Errorf("adjusting balance: %w", err)
	}

	return amount, nil
}

func (s *Store) DeleteBalance(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM balances WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting balance: %w", err)
	}

	return nil
}

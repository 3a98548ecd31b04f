package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, client_id, operator_id, operation_type, currency_operation, amount, net_amount,
// calculated_amount, exchange_rate, balance_id, description, deductions, date, created_at, updated_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var clientID, operatorID, balanceID uuid.NullUUID

	var netAmount, calculatedAmount, exchangeRate decimal.NullDecimal

	var description sql.NullString

	var op string

	var deductions []byte

	if err := s.Scan(
		&tx.ID, &clientID, &operatorID, &tx.OperationType, &op, &tx.Amount,
		&netAmount, &calculatedAmount, &exchangeRate, &balanceID, &description, &deductions,
		&tx.Date, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.ClientID = clientID.UUID
	tx.OperatorID = operatorID.UUID
	tx.CurrencyOperation = transaction.CurrencyOperation(op)
	tx.Description = description.String
	tx.NetAmount = optionalDecimal(netAmount)
	tx.CalculatedAmount = optionalDecimal(calculatedAmount)
	tx.ExchangeRate = optionalDecimal(exchangeRate)

	if balanceID.Valid {
		tx.BalanceID = &balanceID.UUID
	}

	if len(deductions) > 0 {
		var d transaction.Deductions
		if err := json.Unmarshal(deductions, &d); err != nil {
			return nil, fmt.Errorf("decoding deductions: %w", err)
		}

		tx.Deductions = &d
	}

	return &tx, nil
}

func optionalDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}

	return &d.Decimal
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

const selectTransactionColumns = `
	id, client_id, operator_id, operation_type, currency_operation, amount, net_amount,
	calculated_amount, exchange_rate, balance_id, description, deductions, date, created_at, updated_at
`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction, posting *transaction.Posting) error {
	var deductions []byte

	if tx.Deductions != nil {
		var err error
		if deductions, err = json.Marshal(tx.Deductions); err != nil {
			return fmt.Errorf("encoding deductions: %w", err)
		}
	}

	var balanceID uuid.NullUUID
	if tx.BalanceID != nil {
		balanceID = nullUUID(*tx.BalanceID)
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if posting != nil {
		query := `
			UPDATE balances
			SET amount = amount + $1, updated_at = NOW()
			WHERE id = $2
			RETURNING amount
		`
		if err := dbTx.QueryRowContext(ctx, query, posting.Delta, posting.BalanceID).Scan(&posting.Result); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return balance.ErrNotFound
			}

			return fmt.Errorf("updating balance: %w", err)
		}
	}

	query := `
		INSERT INTO transactions (
			id, client_id, operator_id, operation_type, currency_operation, amount, net_amount,
			calculated_amount, exchange_rate, balance_id, description, deductions, date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		tx.ID,
		nullUUID(tx.ClientID),
		nullUUID(tx.OperatorID),
		tx.OperationType,
		tx.CurrencyOperation,
		tx.Amount,
		nullDecimal(tx.NetAmount),
		nullDecimal(tx.CalculatedAmount),
		nullDecimal(tx.ExchangeRate),
		balanceID,
		sql.NullString{String: tx.Description, Valid: tx.Description != ""},
		deductions,
		tx.Date,
	).Scan(&tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

// ListTransactions returns transactions newest first.
func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

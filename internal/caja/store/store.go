package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/caja"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectSessionColumns = `id, is_open, opened_by, opened_at, closed_by, closed_at`

func scanSession(s scanner) (*caja.Session, error) {
	var sess caja.Session

	var openedBy, closedBy uuid.NullUUID

	if err := s.Scan(&sess.ID, &sess.IsOpen, &openedBy, &sess.OpenedAt, &closedBy, &sess.ClosedAt); err != nil {
		return nil, err
	}

	if openedBy.Valid {
		sess.OpenedBy = &openedBy.UUID
	}

	if closedBy.Valid {
		sess.ClosedBy = &closedBy.UUID
	}

	return &sess, nil
}

func (s *Store) GetOpenSession(ctx context.Context) (*caja.Session, error) {
	query := `SELECT ` + selectSessionColumns + ` FROM caja_status WHERE is_open LIMIT 1`

	sess, err := scanSession(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, caja.ErrNoOpenSession
		}

		return nil, fmt.Errorf("getting open session: %w", err)
	}

	return sess, nil
}

func (s *Store) CreateSession(ctx context.Context, sess *caja.Session) error {
	query := `
		INSERT INTO caja_status (id, is_open, opened_by, opened_at)
		VALUES ($1, TRUE, $2, $3)
	`

	if _, err := s.db.ExecContext(ctx, query, sess.ID, sess.OpenedBy, sess.OpenedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return caja.ErrAlreadyOpen
		}

		return fmt.Errorf("creating session: %w", err)
	}

	return nil
}

// CloseSession inserts the snapshots and closes the session in one database transaction.
func (s *Store) CloseSession(ctx context.Context, sess *caja.Session, snapshots []caja.Snapshot) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	snapshotQuery := `
		INSERT INTO balance_snapshots (caja_status_id, balance_id, final_amount, created_at)
		VALUES ($1, $2, $3, $4)
	`

	for _, snap := range snapshots {
		if _, err := dbTx.ExecContext(ctx, snapshotQuery, snap.SessionID, snap.BalanceID, snap.FinalAmount, snap.CreatedAt); err != nil {
			return fmt.Errorf("inserting balance snapshot: %w", err)
		}
	}

	closeQuery := `
		UPDATE caja_status
		SET is_open = FALSE, closed_by = $1, closed_at = $2
		WHERE id = $3 AND is_open
	`

	res, err := dbTx.ExecContext(ctx, closeQuery, sess.ClosedBy, sess.ClosedAt, sess.ID)
	if err != nil {
		return fmt.Errorf("closing session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("closing session: %w", err)
	}

	if n == 0 {
		return caja.ErrNotOpen
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListHistory returns every session, newest first, with its balances. A
// balance's final amount comes from its snapshot when the session has one.
func (s *Store) ListHistory(ctx context.Context) ([]caja.HistoryEntry, error) {
	query := `
		SELECT c.id, c.is_open, c.opened_by, c.opened_at, c.closed_by, c.closed_at,
			b.id, b.name, b.currency_code, b.amount, bs.final_amount
		FROM caja_status c
		LEFT JOIN balances b ON b.caja_status_id = c.id
		LEFT JOIN balance_snapshots bs ON bs.caja_status_id = c.id AND bs.balance_id = b.id
		ORDER BY c.opened_at DESC NULLS LAST, c.id, b.created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing caja history: %w", err)
	}
	defer rows.Close()

	var entries []caja.HistoryEntry

	for rows.Next() {
		var (
			sess                caja.Session
			openedBy, closedBy  uuid.NullUUID
			balanceID           uuid.NullUUID
			name, currencyCode  sql.NullString
			amount, finalAmount decimal.NullDecimal
		)

		if err := rows.Scan(
			&sess.ID, &sess.IsOpen, &openedBy, &sess.OpenedAt, &closedBy, &sess.ClosedAt,
			&balanceID, &name, &currencyCode, &amount, &finalAmount,
		); err != nil {
			return nil, fmt.Errorf("scanning caja history: %w", err)
		}

		if len(entries) == 0 || entries[len(entries)-1].Session.ID != sess.ID {
			if openedBy.Valid {
				sess.OpenedBy = &openedBy.UUID
			}

			if closedBy.Valid {
				sess.ClosedBy = &closedBy.UUID
			}

			entries = append(entries, caja.HistoryEntry{Session: sess, Balances: []caja.HistoryBalance{}})
		}

		if !balanceID.Valid {
			continue
		}

		hb := caja.HistoryBalance{
			ID:           balanceID.UUID,
			Name:         name.String,
			CurrencyCode: currencyCode.String,
			Amount:       amount.Decimal,
			FinalAmount:  amount.Decimal,
		}

		if finalAmount.Valid {
			hb.FinalAmount = finalAmount.Decimal
		}

		last := &entries[len(entries)-1]
		last.Balances = append(last.Balances, hb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating caja history: %w", err)
	}

	return entries, nil
}

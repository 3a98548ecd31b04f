package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/cambio/internal/operator"
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

const selectOperatorColumns = `id, name, email, password, role, permissions, active, created_at`

func scanOperator(s scanner) (*operator.Operator, error) {
	var o operator.Operator

	var role string

	var permissions []byte

	if err := s.Scan(&o.ID, &o.Name, &o.Email, &o.PasswordHash, &role, &permissions, &o.Active, &o.CreatedAt); err != nil {
		return nil, err
	}

	o.Role = operator.Role(role)

	if len(permissions) > 0 {
		if err := json.Unmarshal(permissions, &o.Permissions); err != nil {
			return nil, fmt.Errorf("decoding permissions: %w", err)
		}
	}

	return &o, nil
}

func (s *Store) CreateOperator(ctx context.Context, o *operator.Operator) error {
	permissions, err := json.Marshal(o.Permissions)
	if err != nil {
		return fmt.Errorf("encoding permissions: %w", err)
	}

	query := `
		INSERT INTO operators (id, name, email, password, role, permissions, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		o.ID, o.Name, o.Email, o.PasswordHash, o.Role, permissions, o.Active,
	).Scan(&o.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return operator.ErrDuplicateEmail
		}

		return fmt.Errorf("creating operator: %w", err)
	}

	return nil
}

func (s *Store) GetOperator(ctx context.Context, id uuid.UUID) (*operator.Operator, error) {
	query := `SELECT ` + selectOperatorColumns + ` FROM operators WHERE id = $1`

	o, err := scanOperator(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, operator.ErrNotFound
		}

		return nil, fmt.Errorf("getting operator: %w", err)
	}

	return o, nil
}

func (s *Store) GetActiveByEmail(ctx context.Context, email string) (*operator.Operator, error) {
	query := `SELECT ` + selectOperatorColumns + ` FROM operators WHERE email = $1 AND active`

	o, err := scanOperator(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, operator.ErrNotFound
		}

		return nil, fmt.Errorf("getting operator by email: %w", err)
	}

	return o, nil
}

func (s *Store) ListOperators(ctx context.Context) ([]*operator.Operator, error) {
	query := `SELECT ` + selectOperatorColumns + ` FROM operators ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing operators: %w", err)
	}
	defer rows.Close()

	var out []*operator.Operator

	for rows.Next() {
		o, err := scanOperator(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning operator: %w", err)
		}

		out = append(out, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operator rows: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateOperator(ctx context.Context, o *operator.Operator) error {
	permissions, err := json.Marshal(o.Permissions)
	if err != nil {
		return fmt.Errorf("encoding permissions: %w", err)
	}

	query := `
		UPDATE operators
		SET name = $1, role = $2, permissions = $3, active = $4
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query, o.Name, o.Role, permissions, o.Active, o.ID)
	if err != nil {
		return fmt.Errorf("updating operator: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return operator.ErrNotFound
	}

	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE operators SET password = $1 WHERE id = $2`, hash, id); err != nil {
		return fmt.Errorf("updating operator password: %w", err)
	}

	return nil
}

func (s *Store) DeleteOperator(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM operators WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting operator: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func mapWriteError(err error, verb string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return operationtype.ErrDuplicateCode
	}

	return fmt.Errorf("%s operation type: %w", verb, err)
}

func (s *Store) CreateOperationType(ctx context.Context, ot *operationtype.OperationType) error {
	query := `
		INSERT INTO operation_types (id, name, code, description, active)
		VALUES ($1, $2, $3, $4, $5)
	`

	description := sql.NullString{String: ot.Description, Valid: ot.Description != ""}

	if _, err := s.db.ExecContext(ctx, query, ot.ID, ot.Name, ot.Code, description, ot.Active); err != nil {
		return mapWriteError(err, "creating")
	}

	return nil
}

func (s *Store) ListOperationTypes(ctx context.Context) ([]*operationtype.OperationType, error) {
	query := `SELECT id, name, code, description, active FROM operation_types ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing operation types: %w", err)
	}
	defer rows.Close()

	var out []*operationtype.OperationType

	for rows.Next() {
		var (
			ot          operationtype.OperationType
			description sql.NullString
		)

		if err := rows.Scan(&ot.ID, &ot.Name, &ot.Code, &description, &ot.Active); err != nil {
			return nil, fmt.Errorf("scanning operation type: %w", err)
		}

		ot.Description = description.String
		out = append(out, &ot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operation type rows: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateOperationType(ctx context.Context, ot *operationtype.OperationType) error {
	query := `
		UPDATE operation_types
		SET name = $1, code = $2, description = $3, active = $4
		WHERE id = $5
	`

	description := sql.NullString{String: ot.Description, Valid: ot.Description != ""}

	res, err := s.db.ExecContext(ctx, query, ot.Name, ot.Code, description, ot.Active, ot.ID)
	if err != nil {
		return mapWriteError(err, "updating")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return operationtype.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteOperationType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM operation_types WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting operation type: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cambio/internal/client"
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

const selectClientColumns = `id, name, document_type, document_number, phone, email, address, kyc_status, active`

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var docType, docNumber, phone, email, address, kyc sql.NullString

	if err := s.Scan(&c.ID, &c.Name, &docType, &docNumber, &phone, &email, &address, &kyc, &c.Active); err != nil {
		return nil, err
	}

	c.DocumentType = docType.String
	c.DocumentNumber = docNumber.String
	c.Phone = phone.String
	c.Email = email.String
	c.Address = address.String
	c.KYCStatus = client.KYCStatus(kyc.String)

	return &c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (id, name, document_type, document_number, phone, email, address, kyc_status, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, nullString(c.DocumentType), nullString(c.DocumentNumber), nullString(c.Phone),
		nullString(c.Email), nullString(c.Address), nullString(string(c.KYCStatus)), c.Active,
	)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET name = $1, document_type = $2, document_number = $3, phone = $4, email = $5,
			address = $6, kyc_status = $7, active = $8
		WHERE id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		c.Name, nullString(c.DocumentType), nullString(c.DocumentNumber), nullString(c.Phone),
		nullString(c.Email), nullString(c.Address), nullString(string(c.KYCStatus)), c.Active, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return client.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}

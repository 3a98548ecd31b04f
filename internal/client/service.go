package client

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cambio/internal/state"
)

var ErrInvalidKYCStatus = errors.New("invalid kyc status")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo    Repository
	clients *state.Container[Client]
}

func NewService(repo Repository, clients *state.Container[Client]) *Service {
	return &Service{repo: repo, clients: clients}
}

type Params struct {
	Name           string
	DocumentType   string
	DocumentNumber string
	Phone          string
	Email          string
	Address        string
	KYCStatus      KYCStatus
	Active         bool
}

func (p Params) apply(c *Client) {
	c.Name = p.Name
	c.DocumentType = p.DocumentType
	c.DocumentNumber = p.DocumentNumber
	c.Phone = p.Phone
	c.Email = p.Email
	c.Address = p.Address
	c.KYCStatus = p.KYCStatus
	c.Active = p.Active
}

func (s *Service) Create(ctx context.Context, params Params) (*Client, error) {
	if !params.KYCStatus.Valid() {
		return nil, ErrInvalidKYCStatus
	}

	c := &Client{ID: uuid.New()}
	params.apply(c)

	if err := s.repo.CreateClient(ctx, c); err != nil {
		slog.Error("failed to add client", "error", err)
		return nil, err
	}

	s.clients.Update(state.SourceLocal, func(items []Client) []Client {
		return append(items, *c)
	})

	return c, nil
}

func (s *Service) List() []Client {
	return s.clients.All()
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*Client, error) {
	if !params.KYCStatus.Valid() {
		return nil, ErrInvalidKYCStatus
	}

	c := &Client{ID: id}
	params.apply(c)

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		slog.Error("failed to edit client", "client_id", id, "error", err)
		return nil, err
	}

	s.clients.Update(state.SourceLocal, func(items []Client) []Client {
		for i := range items {
			if items[i].ID == id {
				items[i] = *c
			}
		}

		return items
	})

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		slog.Error("failed to delete client", "client_id", id, "error", err)
		return err
	}

	s.clients.Update(state.SourceLocal, func(items []Client) []Client {
		return slices.DeleteFunc(items, func(c Client) bool { return c.ID == id })
	})

	return nil
}

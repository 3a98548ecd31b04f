package operator

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cambio/internal/state"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=operator
type Repository interface {
	CreateOperator(ctx context.Context, o *Operator) error
	GetOperator(ctx context.Context, id uuid.UUID) (*Operator, error)
	// GetActiveByEmail returns ErrNotFound for unknown or inactive operators.
	GetActiveByEmail(ctx context.Context, email string) (*Operator, error)
	ListOperators(ctx context.Context) ([]*Operator, error)
	UpdateOperator(ctx context.Context, o *Operator) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	DeleteOperator(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo       Repository
	operators  *state.Container[Operator]
	bcryptCost int
}

func NewService(repo Repository, operators *state.Container[Operator]) *Service {
	return &Service{repo: repo, operators: operators}
}

// WithBcryptCost overrides the hashing cost, mainly for tests.
func (s *Service) WithBcryptCost(cost int) *Service {
	s.bcryptCost = cost
	return s
}

type CreateParams struct {
	Name        string
	Email       string
	Password    string
	Role        Role
	Permissions Permissions
}

type UpdateParams struct {
	Name        *string
	Role        *Role
	Permissions *Permissions
	Active      *bool
	Password    *string
}

func (s *Service) List() []Operator {
	return s.operators.All()
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Operator, error) {
	return s.repo.GetOperator(ctx, id)
}

// Authenticate returns the active operator with the given email when password matches.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Operator, bool, error) {
	o, err := s.repo.GetActiveByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, false, err
	}

	return o, o.CheckPassword(password), nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Operator, error) {
	if params.Role == "" {
		params.Role = RoleOperator
	}

	if !params.Role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := HashPassword(params.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	o := &Operator{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        normalizeEmail(params.Email),
		PasswordHash: hash,
		Role:         params.Role,
		Permissions:  params.Permissions,
		Active:       true,
	}

	if err := s.repo.CreateOperator(ctx, o); err != nil {
		slog.Error("failed to add operator", "email", o.Email, "error", err)
		return nil, err
	}

	s.operators.Update(state.SourceLocal, func(items []Operator) []Operator {
		return append(items, *o)
	})

	return o, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Operator, error) {
	o, err := s.repo.GetOperator(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		o.Name = *params.Name
	}

	if params.Role != nil {
		if !params.Role.Valid() {
			return nil, ErrInvalidRole
		}

		o.Role = *params.Role
	}

	if params.Permissions != nil {
		o.Permissions = *params.Permissions
	}

	if params.Active != nil {
		o.Active = *params.Active
	}

	if err := s.repo.UpdateOperator(ctx, o); err != nil {
		slog.Error("failed to edit operator", "operator_id", id, "error", err)
		return nil, err
	}

	if params.Password != nil {
		hash, err := HashPassword(*params.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}

		if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
			slog.Error("failed to change operator password", "operator_id", id, "error", err)
			return nil, err
		}

		o.PasswordHash = hash
	}

	s.operators.Update(state.SourceLocal, func(items []Operator) []Operator {
		for i := range items {
			if items[i].ID == id {
				items[i] = *o
			}
		}

		return items
	})

	return o, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteOperator(ctx, id); err != nil {
		slog.Error("failed to delete operator", "operator_id", id, "error", err)
		return err
	}

	s.operators.Update(state.SourceLocal, func(items []Operator) []Operator {
		return slices.DeleteFunc(items, func(o Operator) bool { return o.ID == id })
	})

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

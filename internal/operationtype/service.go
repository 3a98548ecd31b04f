package operationtype

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cambio/internal/state"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=operationtype
type Repository interface {
	CreateOperationType(ctx context.Context, ot *OperationType) error
	ListOperationTypes(ctx context.Context) ([]*OperationType, error)
	UpdateOperationType(ctx context.Context, ot *OperationType) error
	DeleteOperationType(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo  Repository
	types *state.Container[OperationType]
}

func NewService(repo Repository, types *state.Container[OperationType]) *Service {
	return &Service{repo: repo, types: types}
}

type Params struct {
	Name        string
	Code        string
	Description string
	Active      bool
}

func (s *Service) List() []OperationType {
	return s.types.All()
}

// ByCode looks an active operation type up by its code.
func (s *Service) ByCode(code string) (OperationType, bool) {
	code = strings.ToUpper(code)

	return s.types.Find(func(ot OperationType) bool { return ot.Active && ot.Code == code })
}

func (s *Service) Create(ctx context.Context, params Params) (*OperationType, error) {
	ot := &OperationType{
		ID:          uuid.New(),
		Name:        params.Name,
		Code:        strings.ToUpper(params.Code),
		Description: params.Description,
		Active:      params.Active,
	}

	if err := s.repo.CreateOperationType(ctx, ot); err != nil {
		slog.Error("failed to add operation type", "code", ot.Code, "error", err)
		return nil, err
	}

	s.types.Update(state.SourceLocal, func(items []OperationType) []OperationType {
		return append(items, *ot)
	})

	return ot, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params Params) (*OperationType, error) {
	ot := &OperationType{
		ID:          id,
		Name:        params.Name,
		Code:        strings.ToUpper(params.Code),
		Description: params.Description,
		Active:      params.Active,
	}

	if err := s.repo.UpdateOperationType(ctx, ot); err != nil {
		slog.Error("failed to edit operation type", "operation_type_id", id, "error", err)
		return nil, err
	}

	s.types.Update(state.SourceLocal, func(items []OperationType) []OperationType {
		for i := range items {
			if items[i].ID == id {
				items[i] = *ot
			}
		}

		return items
	})

	return ot, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteOperationType(ctx, id); err != nil {
		slog.Error("failed to delete operation type", "operation_type_id", id, "error", err)
		return err
	}

	s.types.Update(state.SourceLocal, func(items []OperationType) []OperationType {
		return slices.DeleteFunc(items, func(ot OperationType) bool { return ot.ID == id })
	})

	return nil
}

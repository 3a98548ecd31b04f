package caja

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/state"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=caja
type Repository interface {
	// GetOpenSession returns ErrNoOpenSession when every session is closed.
	GetOpenSession(ctx context.Context) (*Session, error)
	// CreateSession returns ErrAlreadyOpen when the store rejects a second open session.
	CreateSession(ctx context.Context, s *Session) error
	// CloseSession stores the snapshots and marks the session closed atomically.
	CloseSession(ctx context.Context, s *Session, snapshots []Snapshot) error
	ListHistory(ctx context.Context) ([]HistoryEntry, error)
}

type Service struct {
	repo     Repository
	session  *state.Value[Session]
	balances *state.Container[balance.Balance]
	now      func() time.Time
}

func NewService(repo Repository, session *state.Value[Session], balances *state.Container[balance.Balance]) *Service {
	return &Service{
		repo:     repo,
		session:  session,
		balances: balances,
		now:      time.Now,
	}
}

// Current returns the locally known session.
func (s *Service) Current() Session {
	return s.session.Get()
}

// Open starts a new register session for the operator. Local balances are
// cleared so the new session starts with none.
func (s *Service) Open(ctx context.Context, operatorID uuid.UUID) (*Session, error) {
	if operatorID == uuid.Nil {
		return nil, ErrNoOperator
	}

	existing, err := s.repo.GetOpenSession(ctx)

	switch {
	case err == nil && existing != nil:
		return nil, ErrAlreadyOpen
	case err != nil && !errors.Is(err, ErrNoOpenSession):
		slog.Error("failed to fetch existing caja", "error", err)
		return nil, err
	}

	openedAt := s.now().UTC()
	sess := &Session{
		ID:       uuid.New(),
		IsOpen:   true,
		OpenedBy: &operatorID,
		OpenedAt: &openedAt,
	}

	if err := s.repo.CreateSession(ctx, sess); err != nil {
		if !errors.Is(err, ErrAlreadyOpen) {
			slog.Error("failed to open caja", "error", err)
		}

		return nil, err
	}

	s.session.Set(state.SourceLocal, *sess)
	s.balances.Replace(state.SourceLocal, nil)

	return sess, nil
}

// Close snapshots every balance of the open session and closes it.
func (s *Service) Close(ctx context.Context, operatorID uuid.UUID) (*Session, error) {
	if operatorID == uuid.Nil {
		return nil, ErrNoOperator
	}

	current := s.session.Get()
	if !current.IsOpen || current.ID == uuid.Nil {
		return nil, ErrNotOpen
	}

	closedAt := s.now().UTC()

	var snapshots []Snapshot

	for _, b := range s.balances.All() {
		if b.SessionID != current.ID {
			continue
		}

		snapshots = append(snapshots, Snapshot{
			SessionID:   current.ID,
			BalanceID:   b.ID,
			FinalAmount: b.Amount,
			CreatedAt:   closedAt,
		})
	}

	closed := current
	closed.IsOpen = false
	closed.ClosedBy = &operatorID
	closed.ClosedAt = &closedAt

	if err := s.repo.CloseSession(ctx, &closed, snapshots); err != nil {
		slog.Error("failed to close caja", "caja_id", current.ID, "error", err)
		return nil, err
	}

	s.session.Set(state.SourceLocal, closed)
	s.balances.Replace(state.SourceLocal, nil)

	return &closed, nil
}

func (s *Service) History(ctx context.Context) ([]HistoryEntry, error) {
	return s.repo.ListHistory(ctx)
}

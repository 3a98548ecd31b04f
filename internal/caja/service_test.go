package caja_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/caja"
	"github.com/MrJamesThe3rd/cambio/internal/state"
)

func TestService_Open(t *testing.T) {
	operatorID := uuid.New()
	existing := &caja.Session{ID: uuid.New(), IsOpen: true}

	type testCase struct {
		name       string
		operatorID uuid.UUID
		setupMock  func(m *caja.MockRepository)
		wantErr    error
		wantOpen   bool
	}

	tests := []testCase{
		{
			name:       "OpensWhenNoneOpen",
			operatorID: operatorID,
			setupMock: func(m *caja.MockRepository) {
				m.EXPECT().GetOpenSession(gomock.Any()).Return(nil, caja.ErrNoOpenSession)
				m.EXPECT().
					CreateSession(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *caja.Session) error {
						assert.True(t, s.IsOpen)
						require.NotNil(t, s.OpenedBy)
						assert.Equal(t, operatorID, *s.OpenedBy)

						return nil
					})
			},
			wantOpen: true,
		},
		{
			name:       "ConflictWhenAlreadyOpen",
			operatorID: operatorID,
			setupMock: func(m *caja.MockRepository) {
				m.EXPECT().GetOpenSession(gomock.Any()).Return(existing, nil)
			},
			wantErr: caja.ErrAlreadyOpen,
		},
		{
			name:       "ConflictFromStore",
			operatorID: operatorID,
			setupMock: func(m *caja.MockRepository) {
				m.EXPECT().GetOpenSession(gomock.Any()).Return(nil, caja.ErrNoOpenSession)
				m.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(caja.ErrAlreadyOpen)
			},
			wantErr: caja.ErrAlreadyOpen,
		},
		{
			name:       "LookupError",
			operatorID: operatorID,
			setupMock: func(m *caja.MockRepository) {
				m.EXPECT().GetOpenSession(gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
		{
			name:       "NoOperator",
			operatorID: uuid.Nil,
			wantErr:    caja.ErrNoOperator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := caja.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			session := state.NewValue(caja.Session{})
			balances := state.NewContainer[balance.Balance]()
			balances.Replace(state.SourceLocal, []balance.Balance{{ID: uuid.New(), Amount: decimal.NewFromInt(10)}})

			svc := caja.NewService(repo, session, balances)
			got, err := svc.Open(context.Background(), tt.operatorID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				assert.Nil(t, got)
				assert.False(t, session.Get().IsOpen, "session must be unchanged")
				assert.Equal(t, 1, balances.Len(), "balances must be unchanged")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOpen, session.Get().IsOpen)
			assert.Equal(t, got.ID, session.Get().ID)
			assert.Zero(t, balances.Len())
		})
	}
}

func TestService_Close(t *testing.T) {
	ctrl := gomock.NewController(t)

	operatorID := uuid.New()
	sessionID := uuid.New()

	balances := state.NewContainer[balance.Balance]()
	balances.Replace(state.SourceLocal, []balance.Balance{
		{ID: uuid.New(), SessionID: sessionID, Amount: decimal.RequireFromString("1500.50")},
		{ID: uuid.New(), SessionID: sessionID, Amount: decimal.RequireFromString("20")},
		{ID: uuid.New(), SessionID: uuid.New(), Amount: decimal.RequireFromString("99")},
	})

	session := state.NewValue(caja.Session{ID: sessionID, IsOpen: true})

	repo := caja.NewMockRepository(ctrl)
	repo.EXPECT().
		CloseSession(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *caja.Session, snaps []caja.Snapshot) error {
			assert.False(t, s.IsOpen)
			require.NotNil(t, s.ClosedBy)
			assert.Equal(t, operatorID, *s.ClosedBy)

			require.Len(t, snaps, 2)
			assert.True(t, decimal.RequireFromString("1500.50").Equal(snaps[0].FinalAmount))
			assert.True(t, decimal.RequireFromString("20").Equal(snaps[1].FinalAmount))

			for _, snap := range snaps {
				assert.Equal(t, sessionID, snap.SessionID)
			}

			return nil
		})

	svc := caja.NewService(repo, session, balances)

	got, err := svc.Close(context.Background(), operatorID)
	require.NoError(t, err)

	assert.Equal(t, sessionID, got.ID)
	assert.False(t, session.Get().IsOpen)
	assert.NotNil(t, session.Get().ClosedAt)
	assert.Zero(t, balances.Len())
}

func TestService_Close_NotOpen(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := caja.NewService(caja.NewMockRepository(ctrl), state.NewValue(caja.Session{}), state.NewContainer[balance.Balance]())

	_, err := svc.Close(context.Background(), uuid.New())
	assert.ErrorIs(t, err, caja.ErrNotOpen)
}

func TestService_Close_RepoErrorKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)

	sessionID := uuid.New()
	session := state.NewValue(caja.Session{ID: sessionID, IsOpen: true})
	balances := state.NewContainer[balance.Balance]()
	balances.Replace(state.SourceLocal, []balance.Balance{{ID: uuid.New(), SessionID: sessionID}})

	repo := caja.NewMockRepository(ctrl)
	repo.EXPECT().CloseSession(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	svc := caja.NewService(repo, session, balances)

	_, err := svc.Close(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.True(t, session.Get().IsOpen)
	assert.Equal(t, 1, balances.Len())
}

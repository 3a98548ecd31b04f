package balance_test

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
	"github.com/MrJamesThe3rd/cambio/internal/state"
)

func newService(t *testing.T) (*balance.Service, *balance.MockRepository, *state.Container[balance.Balance]) {
	t.Helper()

	repo := balance.NewMockRepository(gomock.NewController(t))
	balances := state.NewContainer[balance.Balance]()

	return balance.NewService(repo, balances), repo, balances
}

func TestService_Create(t *testing.T) {
	svc, repo, balances := newService(t)

	sessionID := uuid.New()

	repo.EXPECT().CreateBalance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *balance.Balance) error {
			assert.Equal(t, sessionID, b.SessionID)
			assert.True(t, b.Active)

			return nil
		})

	b, err := svc.Create(context.Background(), balance.CreateParams{
		Name: "Efectivo", CurrencyCode: "ARS", Amount: decimal.NewFromInt(100), SessionID: sessionID,
	})
	require.NoError(t, err)

	got, ok := svc.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, "Efectivo", got.Name)
	assert.Equal(t, 1, balances.Len())
}

func TestService_CreateFailureLeavesState(t *testing.T) {
	svc, repo, balances := newService(t)

	repo.EXPECT().CreateBalance(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := svc.Create(context.Background(), balance.CreateParams{Name: "Efectivo"})
	require.Error(t, err)
	assert.Equal(t, 0, balances.Len())
}

func TestService_Adjust(t *testing.T) {
	svc, repo, balances := newService(t)

	id := uuid.New()
	balances.Replace(state.SourceRefresh, []balance.Balance{{ID: id, Amount: decimal.NewFromInt(100)}})

	repo.EXPECT().AdjustAmount(gomock.Any(), id, decimal.NewFromInt(-30)).Return(decimal.NewFromInt(70), nil)

	b, err := svc.Adjust(context.Background(), id, decimal.NewFromInt(-30))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(70).Equal(b.Amount))

	got, _ := svc.Get(id)
	assert.True(t, decimal.NewFromInt(70).Equal(got.Amount))
}

func TestService_AdjustUnknownLocallyReloads(t *testing.T) {
	svc, repo, _ := newService(t)

	id := uuid.New()

	repo.EXPECT().AdjustAmount(gomock.Any(), id, gomock.Any()).Return(decimal.NewFromInt(5), nil)
	repo.EXPECT().GetBalance(gomock.Any(), id).Return(&balance.Balance{ID: id, Amount: decimal.NewFromInt(5)}, nil)

	b, err := svc.Adjust(context.Background(), id, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)

	_, ok := svc.Get(id)
	assert.True(t, ok)
}

func TestService_UpdateAndToggle(t *testing.T) {
	svc, repo, balances := newService(t)

	id := uuid.New()
	stored := balance.Balance{ID: id, Name: "Caja", CurrencyCode: "USD", Active: true}
	balances.Replace(state.SourceRefresh, []balance.Balance{stored})

	repo.EXPECT().GetBalance(gomock.Any(), id).DoAndReturn(func(context.Context, uuid.UUID) (*balance.Balance, error) {
		b := stored
		return &b, nil
	}).Times(2)
	repo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	b, err := svc.Update(context.Background(), id, balance.UpdateParams{Name: new("Caja fuerte")})
	require.NoError(t, err)
	assert.Equal(t, "Caja fuerte", b.Name)
	assert.Equal(t, "USD", b.CurrencyCode)

	b, err = svc.ToggleActive(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, b.Active)

	got, _ := svc.Get(id)
	assert.False(t, got.Active)
	assert.Equal(t, 1, balances.Len())
}

func TestService_Delete(t *testing.T) {
	svc, repo, balances := newService(t)

	keep, drop := uuid.New(), uuid.New()
	balances.Replace(state.SourceRefresh, []balance.Balance{{ID: keep}, {ID: drop}})

	repo.EXPECT().DeleteBalance(gomock.Any(), drop).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), drop))

	all := svc.List()
	require.Len(t, all, 1)
	assert.Equal(t, keep, all[0].ID)
}

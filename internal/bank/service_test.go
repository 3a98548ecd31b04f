package bank_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cambio/internal/bank"
	"github.com/MrJamesThe3rd/cambio/internal/state"
)

func newService(t *testing.T) (*bank.Service, *bank.MockRepository, *state.Container[bank.Balance]) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := bank.NewMockRepository(ctrl)
	balances := state.NewContainer[bank.Balance]()

	return bank.NewService(repo, state.NewContainer[bank.Bank](), balances), repo, balances
}

func TestService_Balance_ZeroWhenMissing(t *testing.T) {
	svc, _, _ := newService(t)
	assert.True(t, svc.Balance(uuid.New(), "USD").IsZero())
}

func TestService_SetThenAdjust(t *testing.T) {
	svc, repo, balances := newService(t)

	bankID := uuid.New()

	repo.EXPECT().SetBalance(gomock.Any(), bankID, "USD", decimal.NewFromInt(100)).Return(nil)
	repo.EXPECT().AdjustBalance(gomock.Any(), bankID, "USD", decimal.NewFromInt(-40)).Return(decimal.NewFromInt(60), nil)

	_, err := svc.SetBalance(context.Background(), bankID, "usd", decimal.NewFromInt(100))
	require.NoError(t, err)

	_, err = svc.AdjustBalance(context.Background(), bankID, "USD", decimal.NewFromInt(-40))
	require.NoError(t, err)

	assert.Equal(t, 1, balances.Len())
	assert.True(t, decimal.NewFromInt(60).Equal(svc.Balance(bankID, "usd")))
}

func TestService_Load_ErrorLeavesState(t *testing.T) {
	svc, repo, balances := newService(t)

	balances.Replace(state.SourceLocal, []bank.Balance{{BankID: uuid.New(), Currency: "ARS"}})

	repo.EXPECT().ListBanks(gomock.Any()).Return([]*bank.Bank{{ID: uuid.New()}}, nil)
	repo.EXPECT().ListBalances(gomock.Any()).Return(nil, errors.New("timeout"))

	err := svc.Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, svc.List())
	assert.Equal(t, 1, balances.Len())
}

func TestService_DeleteDropsBalances(t *testing.T) {
	svc, repo, balances := newService(t)

	bankID := uuid.New()
	balances.Replace(state.SourceLocal, []bank.Balance{
		{BankID: bankID, Currency: "ARS"},
		{BankID: bankID, Currency: "USD"},
		{BankID: uuid.New(), Currency: "USD"},
	})

	repo.EXPECT().DeleteBank(gomock.Any(), bankID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), bankID))
	assert.Equal(t, 1, balances.Len())
}

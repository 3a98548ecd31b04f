package currency_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cambio/internal/currency"
	"github.com/MrJamesThe3rd/cambio/internal/state"
)

func TestPartition(t *testing.T) {
	rows := []*currency.Row{
		{ID: uuid.New(), Type: currency.TypeFiat, Code: "USD", BuyRate: decimal.NewFromInt(1180)},
		{ID: uuid.New(), Type: currency.TypeCrypto, Code: "USDT", Network: "TRC20"},
		{ID: uuid.New(), Type: "OTHER", Code: "???"},
		{ID: uuid.New(), Type: currency.TypeFiat, Code: "EUR"},
	}

	currencies, cryptos := currency.Partition(rows)

	require.Len(t, currencies, 2)
	require.Len(t, cryptos, 1)
	assert.Equal(t, "USD", currencies[0].Code)
	assert.True(t, decimal.NewFromInt(1180).Equal(currencies[0].BuyRate))
	assert.Equal(t, "TRC20", cryptos[0].Network)
}

func TestPartition_EmptyGroupsAreNotNil(t *testing.T) {
	currencies, cryptos := currency.Partition(nil)
	assert.NotNil(t, currencies)
	assert.NotNil(t, cryptos)
}

func TestNormalizeFiatCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "usd", want: "USD"},
		{in: " ars ", want: "ARS"},
		{in: "USDT", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := currency.NormalizeFiatCode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, currency.ErrInvalidCode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CreateCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := currency.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateRow(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *currency.Row) error {
			assert.Equal(t, currency.TypeFiat, r.Type)
			assert.Equal(t, "EUR", r.Code)
			assert.NotEqual(t, uuid.Nil, r.ID)

			return nil
		})

	currencies := state.NewContainer[currency.Currency]()
	cryptos := state.NewContainer[currency.Crypto]()
	svc := currency.NewService(repo, currencies, cryptos)

	got, err := svc.CreateCurrency(context.Background(), currency.CurrencyParams{Code: "eur", Name: "Euro", Active: true})
	require.NoError(t, err)

	assert.Equal(t, "EUR", got.Code)
	assert.Equal(t, 1, currencies.Len())
	assert.Zero(t, cryptos.Len())
}

func TestService_CreateCurrency_InvalidCode(t *testing.T) {
	ctrl := gomock.NewController(t)

	svc := currency.NewService(currency.NewMockRepository(ctrl), state.NewContainer[currency.Currency](), state.NewContainer[currency.Crypto]())

	_, err := svc.CreateCurrency(context.Background(), currency.CurrencyParams{Code: "BTC"})
	assert.ErrorIs(t, err, currency.ErrInvalidCode)
}

func TestService_UpdateCrypto(t *testing.T) {
	ctrl := gomock.NewController(t)

	id := uuid.New()
	cryptos := state.NewContainer[currency.Crypto]()
	cryptos.Replace(state.SourceLocal, []currency.Crypto{{ID: id, Code: "USDT", Network: "ERC20"}})

	repo := currency.NewMockRepository(ctrl)
	repo.EXPECT().UpdateRow(gomock.Any(), gomock.Any()).Return(nil)

	svc := currency.NewService(repo, state.NewContainer[currency.Currency](), cryptos)

	_, err := svc.UpdateCrypto(context.Background(), id, currency.CryptoParams{Code: "usdt", Network: "TRC20", Active: true})
	require.NoError(t, err)

	all := cryptos.All()
	require.Len(t, all, 1)
	assert.Equal(t, "TRC20", all[0].Network)
}

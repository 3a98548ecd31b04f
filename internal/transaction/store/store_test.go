package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/transaction"
	"github.com/MrJamesThe3rd/cambio/internal/transaction/store"
)

func TestStore_CreateTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	balanceID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE balances")).
		WithArgs(sqlmock.AnyArg(), balanceID).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow("170"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectCommit()

	tx := &transaction.Transaction{
		ID:                uuid.New(),
		CurrencyOperation: transaction.OpARSIn,
		OperationType:     "CAMBIO",
		Amount:            decimal.RequireFromString("70"),
		BalanceID:         &balanceID,
		Date:              now,
		Deductions:        &transaction.Deductions{IIBB: true},
	}
	posting := &transaction.Posting{BalanceID: balanceID, Delta: decimal.RequireFromString("70")}

	err = store.New(db).CreateTransaction(context.Background(), tx, posting)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("170").Equal(posting.Result))
	require.NotNil(t, tx.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateTransaction_MissingBalanceRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE balances")).
		WillReturnRows(sqlmock.NewRows([]string{"amount"}))
	mock.ExpectRollback()

	balanceID := uuid.New()
	tx := &transaction.Transaction{ID: uuid.New(), BalanceID: &balanceID, Amount: decimal.NewFromInt(1)}

	err = store.New(db).CreateTransaction(context.Background(), tx, &transaction.Posting{BalanceID: balanceID})
	assert.True(t, errors.Is(err, balance.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListTransactions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	columns := []string{
		"id", "client_id", "operator_id", "operation_type", "currency_operation", "amount", "net_amount",
		"calculated_amount", "exchange_rate", "balance_id", "description", "deductions", "date", "created_at", "updated_at",
	}

	id := uuid.New()
	date := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(date).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			id.String(), nil, nil, "CAMBIO", "USDT_BUY", "10", nil,
			"12500", "1250", nil, nil, []byte(`{"iibb":false,"debCred":true,"copter":false,"custom":false}`),
			date, date, nil,
		))

	got, err := store.New(db).ListTransactions(context.Background(), transaction.ListFilter{StartDate: &date})
	require.NoError(t, err)
	require.Len(t, got, 1)

	tx := got[0]
	assert.Equal(t, id, tx.ID)
	assert.Equal(t, transaction.OpUSDTBuy, tx.CurrencyOperation)
	assert.Nil(t, tx.NetAmount)
	require.NotNil(t, tx.CalculatedAmount)
	assert.True(t, decimal.RequireFromString("12500").Equal(*tx.CalculatedAmount))
	assert.Nil(t, tx.BalanceID)
	require.NotNil(t, tx.Deductions)
	assert.True(t, tx.Deductions.DebCred)
	assert.NoError(t, mock.ExpectationsWereMet())
}

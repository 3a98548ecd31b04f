package store_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cambio/internal/caja"
	"github.com/MrJamesThe3rd/cambio/internal/caja/store"
)

func TestStore_GetOpenSession_None(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM caja_status WHERE is_open")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_open", "opened_by", "opened_at", "closed_by", "closed_at"}))

	_, err = store.New(db).GetOpenSession(context.Background())
	assert.ErrorIs(t, err, caja.ErrNoOpenSession)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateSession_UniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO caja_status")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "caja_status_one_open"})

	operator := uuid.New()
	now := time.Now()

	err = store.New(db).CreateSession(context.Background(), &caja.Session{
		ID: uuid.New(), IsOpen: true, OpenedBy: &operator, OpenedAt: &now,
	})
	assert.ErrorIs(t, err, caja.ErrAlreadyOpen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CloseSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sessionID := uuid.New()
	operator := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO balance_snapshots")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE caja_status")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.New(db).CloseSession(context.Background(),
		&caja.Session{ID: sessionID, ClosedBy: &operator, ClosedAt: &now},
		[]caja.Snapshot{{SessionID: sessionID, BalanceID: uuid.New(), FinalAmount: decimal.NewFromInt(5), CreatedAt: now}},
	)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CloseSession_AlreadyClosed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE caja_status")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = store.New(db).CloseSession(context.Background(), &caja.Session{ID: uuid.New()}, nil)
	assert.ErrorIs(t, err, caja.ErrNotOpen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	columns := []string{
		"id", "is_open", "opened_by", "opened_at", "closed_by", "closed_at",
		"b_id", "name", "currency_code", "amount", "final_amount",
	}

	open, closed := uuid.New(), uuid.New()
	b1, b2 := uuid.New(), uuid.New()
	t1 := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	t0 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM caja_status c")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(open.String(), true, nil, t1, nil, nil, nil, nil, nil, nil, nil).
			AddRow(closed.String(), false, nil, t0, nil, t1, b1.String(), "Pesos", "ARS", "100", "80").
			AddRow(closed.String(), false, nil, t0, nil, t1, b2.String(), "Dolares", "USD", "7", nil))

	got, err := store.New(db).ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, open, got[0].Session.ID)
	assert.Empty(t, got[0].Balances)

	require.Len(t, got[1].Balances, 2)
	assert.True(t, decimal.NewFromInt(80).Equal(got[1].Balances[0].FinalAmount))
	assert.True(t, decimal.NewFromInt(7).Equal(got[1].Balances[1].FinalAmount), "falls back to live amount")
	assert.NoError(t, mock.ExpectationsWereMet())
}

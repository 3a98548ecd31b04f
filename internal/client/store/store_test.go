package store_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cambio/internal/client"
	"github.com/MrJamesThe3rd/cambio/internal/client/store"
)

var columns = []string{"id", "name", "document_type", "document_number", "phone", "email", "address", "kyc_status", "active"}

func TestStore_CreateClient_NullsEmptyFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := &client.Client{ID: uuid.New(), Name: "Juan", Phone: "555-1234", Active: true}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clients")).
		WithArgs(sqlmock.AnyArg(), "Juan", nil, nil, "555-1234", nil, nil, nil, true).
		WillReturnResult(driver.RowsAffected(1))

	require.NoError(t, store.New(db).CreateClient(context.Background(), c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListClients(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), "Juan", "DNI", "30111222", nil, "juan@example.com", nil, "BRIDGE_APPROVED", true))

	got, err := store.New(db).ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "30111222", got[0].DocumentNumber)
	assert.Empty(t, got[0].Phone)
	assert.Equal(t, client.KYCBridgeApproved, got[0].KYCStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetClient_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE id = $1")).WillReturnRows(sqlmock.NewRows(columns))

	_, err = store.New(db).GetClient(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, client.ErrNotFound))
}

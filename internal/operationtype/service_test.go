package operationtype_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
	"github.com/MrJamesThe3rd/cambio/internal/state"
)

func TestService_CreateAndByCode(t *testing.T) {
	repo := operationtype.NewMockRepository(gomock.NewController(t))
	types := state.NewContainer[operationtype.OperationType]()
	svc := operationtype.NewService(repo, types)

	repo.EXPECT().CreateOperationType(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	ot, err := svc.Create(context.Background(), operationtype.Params{Name: "Cambio", Code: "cambio", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "CAMBIO", ot.Code)

	_, err = svc.Create(context.Background(), operationtype.Params{Name: "Viejo", Code: "legacy"})
	require.NoError(t, err)

	got, ok := svc.ByCode("Cambio")
	require.True(t, ok)
	assert.Equal(t, ot.ID, got.ID)

	_, ok = svc.ByCode("LEGACY")
	assert.False(t, ok, "inactive types are not looked up")
}

func TestService_CreateDuplicateLeavesState(t *testing.T) {
	repo := operationtype.NewMockRepository(gomock.NewController(t))
	types := state.NewContainer[operationtype.OperationType]()
	svc := operationtype.NewService(repo, types)

	repo.EXPECT().CreateOperationType(gomock.Any(), gomock.Any()).Return(operationtype.ErrDuplicateCode)

	_, err := svc.Create(context.Background(), operationtype.Params{Name: "Cambio", Code: "CAMBIO"})
	assert.ErrorIs(t, err, operationtype.ErrDuplicateCode)
	assert.Equal(t, 0, types.Len())
}

func TestService_UpdateAndDelete(t *testing.T) {
	repo := operationtype.NewMockRepository(gomock.NewController(t))
	types := state.NewContainer[operationtype.OperationType]()
	svc := operationtype.NewService(repo, types)

	id := uuid.New()
	types.Replace(state.SourceRefresh, []operationtype.OperationType{{ID: id, Name: "Cambio", Code: "CAMBIO", Active: true}})

	repo.EXPECT().UpdateOperationType(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.Update(context.Background(), id, operationtype.Params{Name: "Cambio divisas", Code: "cambio", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "Cambio divisas", svc.List()[0].Name)

	repo.EXPECT().DeleteOperationType(gomock.Any(), id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, svc.List())
}

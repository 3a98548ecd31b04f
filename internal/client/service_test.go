package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cambio/internal/client"
	"github.com/MrJamesThe3rd/cambio/internal/state"
)

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		params    client.Params
		setupMock func(m *client.MockRepository)
		wantErr   error
		wantLen   int
	}{
		{
			name:   "Success",
			params: client.Params{Name: "Ana", KYCStatus: client.KYCBridgeApproved, Active: true},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantLen: 1,
		},
		{
			name:    "InvalidKYC",
			params:  client.Params{Name: "Ana", KYCStatus: "MAYBE"},
			wantErr: client.ErrInvalidKYCStatus,
		},
		{
			name:   "RepoError",
			params: client.Params{Name: "Ana"},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := client.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			clients := state.NewContainer[client.Client]()
			svc := client.NewService(repo, clients)

			got, err := svc.Create(context.Background(), tt.params)
			assert.Equal(t, tt.wantLen, clients.Len())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.Name, got.Name)
		})
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)

	id := uuid.New()
	clients := state.NewContainer[client.Client]()
	clients.Replace(state.SourceLocal, []client.Client{{ID: id, Name: "Old"}, {ID: uuid.New(), Name: "Other"}})

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().UpdateClient(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().DeleteClient(gomock.Any(), id).Return(nil)

	svc := client.NewService(repo, clients)

	_, err := svc.Update(context.Background(), id, client.Params{Name: "New", Active: true})
	require.NoError(t, err)

	c, ok := clients.Find(func(c client.Client) bool { return c.ID == id })
	require.True(t, ok)
	assert.Equal(t, "New", c.Name)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, 1, clients.Len())
}

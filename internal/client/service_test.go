package client_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/client"
)

func TestService_Create(t *testing.T) {
	accountID := uuid.New()
	tagIDs := []uuid.UUID{uuid.New(), uuid.New()}

	type testCase struct {
		name      string
		params    client.CreateParams
		setupMock func(m *client.MockRepository)
		wantErr   error
		wantField string
	}

	tests := []testCase{
		{
			name:   "Success",
			params: client.CreateParams{Name: "Acme", TagIDs: tagIDs},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().CountOwnedTags(gomock.Any(), accountID, tagIDs).Return(2, nil)
				m.EXPECT().
					CreateClient(gomock.Any(), gomock.Any(), tagIDs).
					DoAndReturn(func(_ context.Context, c *client.Client, _ []uuid.UUID) error {
						c.ID = uuid.New()
						return nil
					})
				m.EXPECT().
					GetClient(gomock.Any(), accountID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, id uuid.UUID) (*client.Client, error) {
						return &client.Client{ID: id, AccountID: accountID, Name: "Acme", Status: client.StatusPotential}, nil
					})
			},
		},
		{
			name:      "BlankName",
			params:    client.CreateParams{},
			wantField: "name",
		},
		{
			name:      "UnknownStatus",
			params:    client.CreateParams{Name: "Acme", Status: "archived"},
			wantField: "status",
		},
		{
			// Attaching a tag owned by another account is an explicit
			// denial, not a silent drop.
			name:   "ForeignTag",
			params: client.CreateParams{Name: "Acme", TagIDs: tagIDs},
			setupMock: func(m *client.MockRepository) {
				m.EXPECT().CountOwnedTags(gomock.Any(), accountID, tagIDs).Return(1, nil)
			},
			wantErr: apperr.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := client.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := client.NewService(repo)
			got, err := svc.Create(context.Background(), accountID, tt.params)

			if tt.wantErr != nil || tt.wantField != "" {
				require.Error(t, err)
				assert.Nil(t, got)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				if tt.wantField != "" {
					var fields apperr.FieldErrors
					require.ErrorAs(t, err, &fields)
					assert.Contains(t, fields, tt.wantField)
				}

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, client.StatusPotential, got.Status)
		})
	}
}

func TestService_Update_ForeignTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	clientID := uuid.New()
	tagIDs := []uuid.UUID{uuid.New()}

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().
		GetClient(gomock.Any(), accountID, clientID).
		Return(&client.Client{ID: clientID, AccountID: accountID, Name: "Acme", Status: client.StatusPotential}, nil)
	repo.EXPECT().CountOwnedTags(gomock.Any(), accountID, tagIDs).Return(0, nil)

	svc := client.NewService(repo)

	got, err := svc.Update(context.Background(), accountID, clientID, client.UpdateParams{TagIDs: &tagIDs})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
}

func TestService_Get_ForeignClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	clientID := uuid.New()

	repo := client.NewMockRepository(ctrl)
	repo.EXPECT().GetClient(gomock.Any(), accountID, clientID).Return(nil, apperr.ErrNotFound)

	svc := client.NewService(repo)

	got, err := svc.Get(context.Background(), accountID, clientID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

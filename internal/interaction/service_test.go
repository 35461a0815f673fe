package interaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/interaction"
)

func TestService_Create(t *testing.T) {
	accountID := uuid.New()
	clientID := uuid.New()

	type testCase struct {
		name      string
		params    interaction.CreateParams
		setupMock func(m *interaction.MockRepository)
		wantErr   error
		wantField string
	}

	tests := []testCase{
		{
			name:   "DefaultsApplied",
			params: interaction.CreateParams{ClientID: clientID, Description: "kickoff call"},
			setupMock: func(m *interaction.MockRepository) {
				m.EXPECT().ClientOwned(gomock.Any(), accountID, clientID).Return(true, nil)
				m.EXPECT().
					CreateInteraction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in *interaction.Interaction) error {
						in.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:      "BlankDescription",
			params:    interaction.CreateParams{ClientID: clientID},
			wantField: "description",
		},
		{
			name:      "UnknownType",
			params:    interaction.CreateParams{ClientID: clientID, Description: "x", Type: "carrier pigeon"},
			wantField: "interaction_type",
		},
		{
			name:   "ForeignClient",
			params: interaction.CreateParams{ClientID: clientID, Description: "kickoff call"},
			setupMock: func(m *interaction.MockRepository) {
				m.EXPECT().ClientOwned(gomock.Any(), accountID, clientID).Return(false, nil)
			},
			wantErr: apperr.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := interaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := interaction.NewService(repo)
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
			assert.Equal(t, interaction.TypeCall, got.Type)
			assert.Equal(t, interaction.SLAPending, got.Status)
			assert.False(t, got.Date.IsZero())
		})
	}
}

func TestService_Update_Completion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	id := uuid.New()
	completedAt := time.Date(2026, 2, 10, 15, 30, 0, 0, time.UTC)
	status := interaction.SLACompleted

	repo := interaction.NewMockRepository(ctrl)
	repo.EXPECT().
		GetInteraction(gomock.Any(), accountID, id).
		Return(&interaction.Interaction{
			ID:          id,
			ClientID:    uuid.New(),
			Type:        interaction.TypeMeeting,
			Description: "quarterly review",
			Status:      interaction.SLAInProgress,
		}, nil)
	repo.EXPECT().UpdateInteraction(gomock.Any(), accountID, gomock.Any()).Return(nil)

	svc := interaction.NewService(repo)

	got, err := svc.Update(context.Background(), accountID, id, interaction.UpdateParams{
		Status:      &status,
		CompletedAt: &completedAt,
	})
	require.NoError(t, err)

	// The partial update must echo both fields back, untouched otherwise.
	assert.Equal(t, interaction.SLACompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completedAt))
	assert.Equal(t, "quarterly review", got.Description)
	assert.Equal(t, interaction.TypeMeeting, got.Type)
}

func TestService_Update_ForeignLooksAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	id := uuid.New()

	repo := interaction.NewMockRepository(ctrl)
	repo.EXPECT().GetInteraction(gomock.Any(), accountID, id).Return(nil, apperr.ErrNotFound)

	svc := interaction.NewService(repo)

	got, err := svc.Update(context.Background(), accountID, id, interaction.UpdateParams{})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

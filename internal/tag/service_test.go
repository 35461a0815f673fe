package tag_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/tag"
)

func TestService_Create(t *testing.T) {
	accountID := uuid.New()

	type testCase struct {
		name      string
		params    tag.CreateParams
		setupMock func(m *tag.MockRepository)
		wantField string
	}

	tests := []testCase{
		{
			name:   "Success",
			params: tag.CreateParams{Name: "vip", Color: "#ff8800"},
			setupMock: func(m *tag.MockRepository) {
				m.EXPECT().
					CreateTag(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tg *tag.Tag) error {
						tg.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:      "BlankName",
			params:    tag.CreateParams{Color: "#ff8800"},
			wantField: "name",
		},
		{
			// Uniqueness is per account, surfaced as a field error.
			name:   "DuplicateName",
			params: tag.CreateParams{Name: "vip"},
			setupMock: func(m *tag.MockRepository) {
				m.EXPECT().CreateTag(gomock.Any(), gomock.Any()).Return(apperr.ErrValidation)
			},
			wantField: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := tag.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := tag.NewService(repo)
			got, err := svc.Create(context.Background(), accountID, tt.params)

			if tt.wantField != "" {
				require.Error(t, err)
				assert.Nil(t, got)

				var fields apperr.FieldErrors
				require.ErrorAs(t, err, &fields)
				assert.Contains(t, fields, tt.wantField)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, accountID, got.AccountID)
			assert.Equal(t, "vip", got.Name)
		})
	}
}

func TestService_Update_DuplicateName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	id := uuid.New()
	name := "existing"

	repo := tag.NewMockRepository(ctrl)
	repo.EXPECT().
		GetTag(gomock.Any(), accountID, id).
		Return(&tag.Tag{ID: id, AccountID: accountID, Name: "vip"}, nil)
	repo.EXPECT().UpdateTag(gomock.Any(), gomock.Any()).Return(apperr.ErrValidation)

	svc := tag.NewService(repo)

	got, err := svc.Update(context.Background(), accountID, id, tag.UpdateParams{Name: &name})
	assert.Nil(t, got)

	var fields apperr.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "name")
}

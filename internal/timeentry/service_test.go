package timeentry_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/timeentry"
)

func TestService_Create(t *testing.T) {
	accountID := uuid.New()
	clientID := uuid.New()
	end := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    timeentry.CreateParams
		setupMock func(m *timeentry.MockRepository)
		wantErr   error
		wantField string
	}

	tests := []testCase{
		{
			name:   "Success",
			params: timeentry.CreateParams{ClientID: clientID, Description: "design review"},
			setupMock: func(m *timeentry.MockRepository) {
				m.EXPECT().ClientOwned(gomock.Any(), accountID, clientID).Return(true, nil)
				m.EXPECT().
					StartEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *timeentry.TimeEntry) error {
						e.ID = uuid.New()
						return nil
					})
				m.EXPECT().
					GetEntry(gomock.Any(), accountID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, id uuid.UUID) (*timeentry.TimeEntry, error) {
						return &timeentry.TimeEntry{ID: id, AccountID: accountID, ClientID: clientID}, nil
					})
			},
		},
		{
			name:      "BornClosedRejected",
			params:    timeentry.CreateParams{ClientID: clientID, End: &end},
			wantField: "end_time",
		},
		{
			// A client owned by someone else must look absent.
			name:    "ForeignClient",
			params:  timeentry.CreateParams{ClientID: clientID},
			wantErr: apperr.ErrNotFound,
			setupMock: func(m *timeentry.MockRepository) {
				m.EXPECT().ClientOwned(gomock.Any(), accountID, clientID).Return(false, nil)
			},
		},
		{
			name:   "AlreadyRunning",
			params: timeentry.CreateParams{ClientID: clientID},
			setupMock: func(m *timeentry.MockRepository) {
				m.EXPECT().ClientOwned(gomock.Any(), accountID, clientID).Return(true, nil)
				m.EXPECT().StartEntry(gomock.Any(), gomock.Any()).Return(apperr.ErrValidation)
			},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := timeentry.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := timeentry.NewService(repo)
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
			assert.True(t, got.Running())
		})
	}
}

func TestService_Start_WhileRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	clientID := uuid.New()

	repo := timeentry.NewMockRepository(ctrl)
	repo.EXPECT().ClientOwned(gomock.Any(), accountID, clientID).Return(true, nil)
	repo.EXPECT().StartEntry(gomock.Any(), gomock.Any()).Return(apperr.ErrValidation)

	svc := timeentry.NewService(repo)

	got, err := svc.Start(context.Background(), accountID, clientID, "second timer")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestService_Toggle_Alternates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	clientID := uuid.New()
	entryID := uuid.New()

	repo := timeentry.NewMockRepository(ctrl)

	started := &timeentry.TimeEntry{ID: entryID, AccountID: accountID, ClientID: clientID}
	gomock.InOrder(
		repo.EXPECT().
			Toggle(gomock.Any(), accountID, clientID, gomock.Any()).
			Return(started, false, nil),
		repo.EXPECT().
			Toggle(gomock.Any(), accountID, clientID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, now time.Time) (*timeentry.TimeEntry, bool, error) {
				stopped := *started
				stopped.End = &now
				return &stopped, true, nil
			}),
	)

	svc := timeentry.NewService(repo)

	first, stopped, err := svc.Toggle(context.Background(), accountID, clientID)
	require.NoError(t, err)
	assert.False(t, stopped)
	assert.True(t, first.Running())

	second, stopped, err := svc.Toggle(context.Background(), accountID, clientID)
	require.NoError(t, err)
	assert.True(t, stopped)
	assert.False(t, second.Running())
	assert.Equal(t, first.ID, second.ID)
}

func TestService_Stop(t *testing.T) {
	accountID := uuid.New()

	t.Run("ClosesOpenEntry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		end := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
		repo := timeentry.NewMockRepository(ctrl)
		repo.EXPECT().
			StopOpenEntry(gomock.Any(), accountID, gomock.Any()).
			Return(&timeentry.TimeEntry{ID: uuid.New(), End: &end}, nil)

		svc := timeentry.NewService(repo)

		got, err := svc.Stop(context.Background(), accountID)
		require.NoError(t, err)
		assert.False(t, got.Running())
	})

	t.Run("IdleAccount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := timeentry.NewMockRepository(ctrl)
		repo.EXPECT().
			StopOpenEntry(gomock.Any(), accountID, gomock.Any()).
			Return(nil, apperr.ErrNotFound)

		svc := timeentry.NewService(repo)

		got, err := svc.Stop(context.Background(), accountID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_Active_Idle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()

	repo := timeentry.NewMockRepository(ctrl)
	repo.EXPECT().GetOpenEntry(gomock.Any(), accountID).Return(nil, apperr.ErrNotFound)

	svc := timeentry.NewService(repo)

	got, err := svc.Active(context.Background(), accountID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_Update_EndBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	entryID := uuid.New()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	repo := timeentry.NewMockRepository(ctrl)
	repo.EXPECT().
		GetEntry(gomock.Any(), accountID, entryID).
		Return(&timeentry.TimeEntry{ID: entryID, AccountID: accountID, Start: start}, nil)

	svc := timeentry.NewService(repo)

	got, err := svc.Update(context.Background(), accountID, entryID, timeentry.UpdateParams{End: &end})
	assert.Nil(t, got)

	var fields apperr.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "end_time")
}

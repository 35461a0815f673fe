package tracker_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/tracker"
)

func TestService_CreateIssue(t *testing.T) {
	accountID := uuid.New()
	projectID := uuid.New()

	type testCase struct {
		name      string
		params    tracker.IssueCreateParams
		setupMock func(m *tracker.MockRepository)
		wantErr   error
		wantField string
	}

	tests := []testCase{
		{
			name:   "ReporterIsRequester",
			params: tracker.IssueCreateParams{ProjectID: projectID, Title: "fix login"},
			setupMock: func(m *tracker.MockRepository) {
				m.EXPECT().ProjectOwned(gomock.Any(), accountID, projectID).Return(true, nil)
				m.EXPECT().
					CreateIssue(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, i *tracker.Issue) error {
						i.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:      "BlankTitle",
			params:    tracker.IssueCreateParams{ProjectID: projectID},
			wantField: "title",
		},
		{
			name:   "ForeignProject",
			params: tracker.IssueCreateParams{ProjectID: projectID, Title: "fix login"},
			setupMock: func(m *tracker.MockRepository) {
				m.EXPECT().ProjectOwned(gomock.Any(), accountID, projectID).Return(false, nil)
			},
			wantErr: apperr.ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := tracker.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := tracker.NewService(repo)
			got, err := svc.CreateIssue(context.Background(), accountID, tt.params)

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
			require.NotNil(t, got.ReporterID)
			assert.Equal(t, accountID, *got.ReporterID)
			assert.Equal(t, tracker.StatusTodo, got.Status)
		})
	}
}

func TestService_CreateComment_TwoHopScope(t *testing.T) {
	accountID := uuid.New()
	issueID := uuid.New()

	t.Run("OwnedIssue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := tracker.NewMockRepository(ctrl)
		repo.EXPECT().IssueOwned(gomock.Any(), accountID, issueID).Return(true, nil)
		repo.EXPECT().
			CreateComment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *tracker.Comment) error {
				c.ID = uuid.New()
				return nil
			})

		svc := tracker.NewService(repo)

		got, err := svc.CreateComment(context.Background(), accountID, issueID, "deployed a fix")
		require.NoError(t, err)
		require.NotNil(t, got.AuthorID)
		assert.Equal(t, accountID, *got.AuthorID)
	})

	t.Run("ForeignIssue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := tracker.NewMockRepository(ctrl)
		repo.EXPECT().IssueOwned(gomock.Any(), accountID, issueID).Return(false, nil)

		svc := tracker.NewService(repo)

		got, err := svc.CreateComment(context.Background(), accountID, issueID, "deployed a fix")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("BlankBody", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := tracker.NewService(tracker.NewMockRepository(ctrl))

		got, err := svc.CreateComment(context.Background(), accountID, issueID, "")
		assert.Nil(t, got)

		var fields apperr.FieldErrors
		require.ErrorAs(t, err, &fields)
		assert.Contains(t, fields, "body")
	})
}

func TestService_UpdateIssue_Unassign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()
	issueID := uuid.New()
	assignee := uuid.New()

	repo := tracker.NewMockRepository(ctrl)
	repo.EXPECT().
		GetIssue(gomock.Any(), accountID, issueID).
		Return(&tracker.Issue{ID: issueID, Title: "fix login", AssigneeID: &assignee, Status: tracker.StatusInProgress}, nil)
	repo.EXPECT().
		UpdateIssue(gomock.Any(), accountID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, i *tracker.Issue) error {
			assert.Nil(t, i.AssigneeID)
			return nil
		})

	svc := tracker.NewService(repo)

	got, err := svc.UpdateIssue(context.Background(), accountID, issueID, tracker.IssueUpdateParams{ClearAssignee: true})
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID)
	assert.Equal(t, tracker.StatusInProgress, got.Status)
}

package gcal_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/gcal"
)

func newService(repo gcal.Repository) *gcal.Service {
	return gcal.NewService(repo, gcal.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/api/calendar/auth/callback",
		Timeout:      time.Second,
	})
}

func TestService_Status(t *testing.T) {
	accountID := uuid.New()

	t.Run("Connected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := gcal.NewMockRepository(ctrl)
		repo.EXPECT().
			GetCredentials(gomock.Any(), accountID).
			Return(&gcal.Credentials{AccountID: accountID, AccessToken: "tok"}, nil)

		connected, err := newService(repo).Status(context.Background(), accountID)
		require.NoError(t, err)
		assert.True(t, connected)
	})

	t.Run("NotConnected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := gcal.NewMockRepository(ctrl)
		repo.EXPECT().GetCredentials(gomock.Any(), accountID).Return(nil, apperr.ErrNotFound)

		connected, err := newService(repo).Status(context.Background(), accountID)
		require.NoError(t, err)
		assert.False(t, connected)
	})
}

func TestService_AuthURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()

	var storedState string

	repo := gcal.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateState(gomock.Any(), accountID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, token string) error {
			storedState = token
			return nil
		})

	raw, err := newService(repo).AuthURL(context.Background(), accountID)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, storedState, q.Get("state"))
	assert.NotEmpty(t, storedState)
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
}

func TestService_Callback_StaleState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := gcal.NewMockRepository(ctrl)
	repo.EXPECT().ConsumeState(gomock.Any(), "gone").Return(uuid.Nil, apperr.ErrNotFound)

	err := newService(repo).Callback(context.Background(), "gone", "auth-code")

	var fields apperr.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "state")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

package gcal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"

	"github.com/avolkov/tinycrm/internal/apperr"
)

// A failed code exchange maps to ErrUnavailable but must keep the
// provider's own error text so the failure can be diagnosed from logs.
func TestCallback_ExchangeFailureKeepsCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_grant", http.StatusBadRequest)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accountID := uuid.New()

	repo := NewMockRepository(ctrl)
	repo.EXPECT().ConsumeState(gomock.Any(), "state-token").Return(accountID, nil)

	svc := NewService(repo, Config{ClientID: "id", ClientSecret: "secret", Timeout: time.Second})
	svc.oauth.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}

	err := svc.Callback(context.Background(), "state-token", "bad-code")
	require.ErrorIs(t, err, apperr.ErrUnavailable)
	assert.Contains(t, err.Error(), "cannot fetch token")
}

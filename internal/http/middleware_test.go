package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avolkov/tinycrm/internal/account"
	"github.com/avolkov/tinycrm/internal/apperr"
	crmhttp "github.com/avolkov/tinycrm/internal/http"
	"github.com/avolkov/tinycrm/internal/http/httpx"
)

var sessionSecret = []byte("test-session-secret")

func newAuthenticator(t *testing.T, repo *account.MockRepository) *crmhttp.Authenticator {
	t.Helper()

	svc := account.NewService(repo, nil)

	return crmhttp.NewAuthenticator(crmhttp.AuthConfig{
		GlobalToken:    "shared-secret",
		GlobalUsername: "global_api_user",
		SessionSecret:  sessionSecret,
	}, svc)
}

// echoAccount reports which account the middleware resolved.
func echoAccount(t *testing.T, got **account.Account) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = httpx.AccountFrom(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator_NoCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := newAuthenticator(t, account.NewMockRepository(ctrl))

	var got *account.Account
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/clients/", nil)

	auth.Middleware(echoAccount(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestAuthenticator_SharedSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	global := &account.Account{ID: uuid.New(), Username: "global_api_user", Active: true}

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().GetOrCreateByUsername(gomock.Any(), "global_api_user").Return(global, nil)

	auth := newAuthenticator(t, repo)

	var got *account.Account
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/clients/", nil)
	req.Header.Set("Authorization", "Token shared-secret")

	auth.Middleware(echoAccount(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, global.ID, got.ID)
}

func TestAuthenticator_SessionCookie(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &account.Account{ID: uuid.New(), Username: "ana", Active: true}

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), stored.ID).Return(stored, nil)

	auth := newAuthenticator(t, repo)

	token, err := account.NewSessionToken(stored.ID, sessionSecret, time.Hour)
	require.NoError(t, err)

	var got *account.Account
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/clients/", nil)
	req.AddCookie(&http.Cookie{Name: crmhttp.SessionCookieName, Value: token})

	auth.Middleware(echoAccount(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, stored.ID, got.ID)
}

func TestAuthenticator_InvalidSessionIsNeverAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := newAuthenticator(t, account.NewMockRepository(ctrl))

	// Signed with the wrong secret.
	token, err := account.NewSessionToken(uuid.New(), []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	var got *account.Account
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/clients/", nil)
	req.AddCookie(&http.Cookie{Name: crmhttp.SessionCookieName, Value: token})

	auth.Middleware(echoAccount(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestAuthenticator_APIToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &account.Account{ID: uuid.New(), Username: "ana", Active: true}

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().GetByToken(gomock.Any(), "opaque-token").Return(stored, nil)

	auth := newAuthenticator(t, repo)

	var got *account.Account
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/clients/", nil)
	req.Header.Set("Authorization", "Token opaque-token")

	auth.Middleware(echoAccount(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, stored.ID, got.ID)
}

func TestAuthenticator_UnknownAPIToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().GetByToken(gomock.Any(), "bogus").Return(nil, apperr.ErrNotFound)

	auth := newAuthenticator(t, repo)

	var got *account.Account
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/clients/", nil)
	req.Header.Set("Authorization", "Token bogus")

	auth.Middleware(echoAccount(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestAuthenticator_MalformedHeaderDeclines(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := newAuthenticator(t, account.NewMockRepository(ctrl))

	var got *account.Account
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/clients/", nil)
	req.Header.Set("Authorization", "Bearer something-else")

	auth.Middleware(echoAccount(t, &got)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

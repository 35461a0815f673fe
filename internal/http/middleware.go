package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/avolkov/tinycrm/internal/account"
	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/http/httpx"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// AuthConfig is the credential-chain configuration handed to the
// middleware at startup; nothing is read from the environment at call
// time.
type AuthConfig struct {
	// GlobalToken is the optional static shared secret. Empty means the
	// shared-secret authenticator silently declines.
	GlobalToken    string
	GlobalUsername string
	SessionSecret  []byte
}

// Authenticator resolves each request's credential to an account and
// stores it in the request context. Credentials are checked in the
// declared order: static shared secret, session cookie, opaque API
// token; first match wins.
type Authenticator struct {
	cfg      AuthConfig
	accounts *account.Service
}

func NewAuthenticator(cfg AuthConfig, accounts *account.Service) *Authenticator {
	return &Authenticator{cfg: cfg, accounts: accounts}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc, err := a.resolve(r)
		if err != nil {
			httpx.Error(w, err)
			return
		}

		if acc == nil {
			httpx.Error(w, apperr.ErrUnauthenticated)
			return
		}

		next.ServeHTTP(w, r.WithContext(httpx.WithAccount(r.Context(), acc)))
	})
}

func (a *Authenticator) resolve(r *http.Request) (*account.Account, error) {
	token, tokenPresent := bearerToken(r)

	// 1. Static shared secret, when configured. A non-matching token is
	// not this credential kind and falls through to the API token check.
	if tokenPresent && a.cfg.GlobalToken != "" {
		if subtle.ConstantTimeCompare([]byte(token), []byte(a.cfg.GlobalToken)) == 1 {
			return a.accounts.ResolveGlobal(r.Context(), a.cfg.GlobalUsername)
		}
	}

	// 2. Session cookie. Present but invalid is a hard failure, never a
	// downgrade to anonymous.
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		id, err := account.ParseSessionToken(cookie.Value, a.cfg.SessionSecret)
		if err != nil {
			return nil, err
		}

		return a.accounts.ResolveID(r.Context(), id)
	}

	// 3. Opaque per-account API token.
	if tokenPresent {
		return a.accounts.ResolveToken(r.Context(), token)
	}

	return nil, nil
}

// bearerToken extracts the value of an "Authorization: Token <value>"
// header. A malformed or differently schemed header declines rather
// than failing.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "token") {
		return "", false
	}

	return parts[1], true
}

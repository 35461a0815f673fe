package httpx

import (
	"context"
	"net/http"

	"github.com/avolkov/tinycrm/internal/account"
)

type contextKey string

const accountKey contextKey = "account"

// WithAccount stores the authenticated account in the request context.
func WithAccount(ctx context.Context, a *account.Account) context.Context {
	return context.WithValue(ctx, accountKey, a)
}

// AccountFrom retrieves the authenticated account. The auth middleware
// guarantees it is present on protected routes.
func AccountFrom(r *http.Request) *account.Account {
	a, _ := r.Context().Value(accountKey).(*account.Account)
	return a
}

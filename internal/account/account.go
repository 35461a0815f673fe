package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is the authenticated tenant and unit of data ownership.
type Account struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
}

// HasUsablePassword reports whether local password login is permitted.
// Accounts created through federated identity carry no local password.
func (a *Account) HasUsablePassword() bool {
	return a.PasswordHash != ""
}

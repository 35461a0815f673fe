// Package gcal integrates with the Google calendar and contacts APIs:
// the OAuth handshake, stored per-account credentials, and event and
// contact operations delegated to the provider.
package gcal

import (
	"time"

	"github.com/google/uuid"
)

// Credentials are the provider tokens stored one-to-one with an
// account. The triple is always written as a whole; a refresh never
// leaves a mismatched partial update behind.
type Credentials struct {
	AccountID    uuid.UUID
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Event mirrors the provider's calendar event at our interface boundary.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// Contact is one entry of the provider's contact list.
type Contact struct {
	Name  string
	Email string
	Phone string
}

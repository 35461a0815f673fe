package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkov/tinycrm/internal/tag"
)

// Status represents where a client sits in the sales pipeline.
type Status string

const (
	StatusPotential  Status = "potential"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCanceled   Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPotential, StatusInProgress, StatusDone, StatusCanceled:
		return true
	}

	return false
}

// Client represents a client record owned by exactly one account.
type Client struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      string
	Email     string
	Phone     string
	Notes     string
	Status    Status
	Birthday  *time.Time // date precision; month+day drive the birthday window
	CreatedAt time.Time
	Tags      []tag.Tag

	// Derived, never persisted. Zero when the client has no transactions.
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a financial transaction owned by one account,
// optionally referencing one of that account's clients.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	ClientID    *uuid.UUID
	ClientName  string // loaded via JOIN, empty when no client
	Amount      decimal.Decimal
	Type        Type
	Description string
	Date        time.Time
}

// Bucket is one period of the financial summary: summed income and
// expense for a calendar month or day. Periods with no activity are
// simply absent from the series.
type Bucket struct {
	Period  time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Summary holds the two aggregation series: all time by month and the
// current calendar month by day, both chronologically ascending.
type Summary struct {
	AllTime   []Bucket
	ThisMonth []Bucket
}

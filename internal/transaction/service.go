package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkov/tinycrm/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, accountID, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*Transaction, int, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, accountID, id uuid.UUID) error

	MonthlyBuckets(ctx context.Context, accountID uuid.UUID) ([]Bucket, error)
	DailyBuckets(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]Bucket, error)

	ClientOwned(ctx context.Context, accountID, clientID uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID    *uuid.UUID
	Amount      decimal.Decimal
	Type        Type
	Description string
	Date        time.Time
}

type UpdateParams struct {
	ClientID    *uuid.UUID
	ClearClient bool
	Amount      *decimal.Decimal
	Type        *Type
	Description *string
	Date        *time.Time
}

type ListFilter struct {
	ClientID *uuid.UUID
	Type     *Type
	Limit    int
	Offset   int
}

func (s *Service) Create(ctx context.Context, accountID uuid.UUID, params CreateParams) (*Transaction, error) {
	if !params.Type.Valid() {
		return nil, apperr.FieldErrors{"transaction_type": "must be income or expense"}
	}

	if params.Description == "" {
		return nil, apperr.FieldErrors{"description": "description is required"}
	}

	if err := s.checkClientOwnership(ctx, accountID, params.ClientID); err != nil {
		return nil, err
	}

	tx := &Transaction{
		AccountID:   accountID,
		ClientID:    params.ClientID,
		Amount:      params.Amount,
		Type:        params.Type,
		Description: params.Description,
		Date:        params.Date,
	}

	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	return s.repo.GetTransaction(ctx, accountID, tx.ID)
}

func (s *Service) Get(ctx context.Context, accountID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, accountID, id)
}

func (s *Service) List(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*Transaction, int, error) {
	return s.repo.ListTransactions(ctx, accountID, filter)
}

func (s *Service) Update(ctx context.Context, accountID, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	switch {
	case params.ClearClient:
		tx.ClientID = nil
	case params.ClientID != nil:
		if err := s.checkClientOwnership(ctx, accountID, params.ClientID); err != nil {
			return nil, err
		}

		tx.ClientID = params.ClientID
	}

	if params.Amount != nil {
		tx.Amount = *params.Amount
	}

	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, apperr.FieldErrors{"transaction_type": "must be income or expense"}
		}

		tx.Type = *params.Type
	}

	if params.Description != nil {
		tx.Description = *params.Description
	}

	if params.Date != nil {
		tx.Date = *params.Date
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("updating transaction: %w", err)
	}

	return s.repo.GetTransaction(ctx, accountID, id)
}

func (s *Service) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, accountID, id)
}

// Summary computes the two series: all time bucketed by calendar month
// and the month containing "now" bucketed by calendar day.
func (s *Service) Summary(ctx context.Context, accountID uuid.UUID, now time.Time) (*Summary, error) {
	allTime, err := s.repo.MonthlyBuckets(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("aggregating monthly buckets: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	thisMonth, err := s.repo.DailyBuckets(ctx, accountID, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("aggregating daily buckets: %w", err)
	}

	return &Summary{AllTime: allTime, ThisMonth: thisMonth}, nil
}

func (s *Service) checkClientOwnership(ctx context.Context, accountID uuid.UUID, clientID *uuid.UUID) error {
	if clientID == nil {
		return nil
	}

	owned, err := s.repo.ClientOwned(ctx, accountID, *clientID)
	if err != nil {
		return fmt.Errorf("checking client ownership: %w", err)
	}

	if !owned {
		return fmt.Errorf("client does not belong to account: %w", apperr.ErrPermissionDenied)
	}

	return nil
}

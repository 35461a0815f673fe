package interaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=interaction
type Repository interface {
	CreateInteraction(ctx context.Context, in *Interaction) error
	GetInteraction(ctx context.Context, accountID, id uuid.UUID) (*Interaction, error)
	ListInteractions(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*Interaction, int, error)
	UpdateInteraction(ctx context.Context, accountID uuid.UUID, in *Interaction) error
	DeleteInteraction(ctx context.Context, accountID, id uuid.UUID) error

	ClientOwned(ctx context.Context, accountID, clientID uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ClientID    uuid.UUID
	Type        Type
	Date        time.Time
	Description string
	DueDate     *time.Time
	Status      SLAStatus
	CompletedAt *time.Time
}

type UpdateParams struct {
	Type        *Type
	Date        *time.Time
	Description *string
	DueDate     *time.Time
	Status      *SLAStatus
	CompletedAt *time.Time
}

type ListFilter struct {
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}

func (s *Service) Create(ctx context.Context, accountID uuid.UUID, params CreateParams) (*Interaction, error) {
	if params.Description == "" {
		return nil, apperr.FieldErrors{"description": "description is required"}
	}

	if params.Type == "" {
		params.Type = TypeCall
	}

	if !params.Type.Valid() {
		return nil, apperr.FieldErrors{"interaction_type": "unknown interaction type"}
	}

	if params.Status == "" {
		params.Status = SLAPending
	}

	if !params.Status.Valid() {
		return nil, apperr.FieldErrors{"status": "unknown status"}
	}

	// Attaching a child to a parent owned by someone else is a write,
	// so the failure is PermissionDenied rather than NotFound.
	owned, err := s.repo.ClientOwned(ctx, accountID, params.ClientID)
	if err != nil {
		return nil, fmt.Errorf("checking client ownership: %w", err)
	}

	if !owned {
		return nil, fmt.Errorf("client does not belong to account: %w", apperr.ErrPermissionDenied)
	}

	in := &Interaction{
		ClientID:    params.ClientID,
		Type:        params.Type,
		Date:        params.Date,
		Description: params.Description,
		DueDate:     params.DueDate,
		Status:      params.Status,
		CompletedAt: params.CompletedAt,
	}

	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	if err := s.repo.CreateInteraction(ctx, in); err != nil {
		return nil, fmt.Errorf("creating interaction: %w", err)
	}

	return in, nil
}

func (s *Service) Get(ctx context.Context, accountID, id uuid.UUID) (*Interaction, error) {
	return s.repo.GetInteraction(ctx, accountID, id)
}

func (s *Service) List(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*Interaction, int, error) {
	return s.repo.ListInteractions(ctx, accountID, filter)
}

func (s *Service) Update(ctx context.Context, accountID, id uuid.UUID, params UpdateParams) (*Interaction, error) {
	in, err := s.repo.GetInteraction(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if params.Type != nil {
		if !params.Type.Valid() {
			return nil, apperr.FieldErrors{"interaction_type": "unknown interaction type"}
		}

		in.Type = *params.Type
	}

	if params.Date != nil {
		in.Date = *params.Date
	}

	if params.Description != nil {
		if *params.Description == "" {
			return nil, apperr.FieldErrors{"description": "description is required"}
		}

		in.Description = *params.Description
	}

	if params.DueDate != nil {
		in.DueDate = params.DueDate
	}

	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, apperr.FieldErrors{"status": "unknown status"}
		}

		in.Status = *params.Status
	}

	if params.CompletedAt != nil {
		in.CompletedAt = params.CompletedAt
	}

	if err := s.repo.UpdateInteraction(ctx, accountID, in); err != nil {
		return nil, fmt.Errorf("updating interaction: %w", err)
	}

	return in, nil
}

func (s *Service) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	return s.repo.DeleteInteraction(ctx, accountID, id)
}

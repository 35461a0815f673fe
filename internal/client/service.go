package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client, tagIDs []uuid.UUID) error
	GetClient(ctx context.Context, accountID, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*Client, int, error)
	UpdateClient(ctx context.Context, c *Client, tagIDs *[]uuid.UUID) error
	DeleteClient(ctx context.Context, accountID, id uuid.UUID) error

	ListWithBirthday(ctx context.Context, accountID uuid.UUID) ([]*Client, error)
	CountOwnedTags(ctx context.Context, accountID uuid.UUID, tagIDs []uuid.UUID) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Email    string
	Phone    string
	Notes    string
	Status   Status
	Birthday *time.Time
	TagIDs   []uuid.UUID
}

type UpdateParams struct {
	Name     *string
	Email    *string
	Phone    *string
	Notes    *string
	Status   *Status
	Birthday *time.Time
	TagIDs   *[]uuid.UUID
}

type ListFilter struct {
	Status *Status
	Limit  int
	Offset int
}

func (s *Service) Create(ctx context.Context, accountID uuid.UUID, params CreateParams) (*Client, error) {
	if params.Name == "" {
		return nil, apperr.FieldErrors{"name": "name is required"}
	}

	if params.Status == "" {
		params.Status = StatusPotential
	}

	if !params.Status.Valid() {
		return nil, apperr.FieldErrors{"status": "unknown status"}
	}

	if err := s.checkTagOwnership(ctx, accountID, params.TagIDs); err != nil {
		return nil, err
	}

	c := &Client{
		AccountID: accountID,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Notes:     params.Notes,
		Status:    params.Status,
		Birthday:  params.Birthday,
	}

	if err := s.repo.CreateClient(ctx, c, params.TagIDs); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return s.repo.GetClient(ctx, accountID, c.ID)
}

func (s *Service) Get(ctx context.Context, accountID, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, accountID, id)
}

func (s *Service) List(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*Client, int, error) {
	return s.repo.ListClients(ctx, accountID, filter)
}

func (s *Service) Update(ctx context.Context, accountID, id uuid.UUID, params UpdateParams) (*Client, error) {
	c, err := s.repo.GetClient(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, apperr.FieldErrors{"name": "name is required"}
		}

		c.Name = *params.Name
	}

	if params.Email != nil {
		c.Email = *params.Email
	}

	if params.Phone != nil {
		c.Phone = *params.Phone
	}

	if params.Notes != nil {
		c.Notes = *params.Notes
	}

	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, apperr.FieldErrors{"status": "unknown status"}
		}

		c.Status = *params.Status
	}

	if params.Birthday != nil {
		c.Birthday = params.Birthday
	}

	if params.TagIDs != nil {
		if err := s.checkTagOwnership(ctx, accountID, *params.TagIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateClient(ctx, c, params.TagIDs); err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	return s.repo.GetClient(ctx, accountID, id)
}

func (s *Service) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, accountID, id)
}

// checkTagOwnership rejects tag references owned by another account.
func (s *Service) checkTagOwnership(ctx context.Context, accountID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}

	owned, err := s.repo.CountOwnedTags(ctx, accountID, tagIDs)
	if err != nil {
		return fmt.Errorf("checking tag ownership: %w", err)
	}

	if owned != len(tagIDs) {
		return fmt.Errorf("tag does not belong to account: %w", apperr.ErrPermissionDenied)
	}

	return nil
}

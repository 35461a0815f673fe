package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tag
type Repository interface {
	CreateTag(ctx context.Context, t *Tag) error
	GetTag(ctx context.Context, accountID, id uuid.UUID) (*Tag, error)
	ListTags(ctx context.Context, accountID uuid.UUID) ([]*Tag, error)
	UpdateTag(ctx context.Context, t *Tag) error
	DeleteTag(ctx context.Context, accountID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Color string
}

func (s *Service) Create(ctx context.Context, accountID uuid.UUID, params CreateParams) (*Tag, error) {
	if params.Name == "" {
		return nil, apperr.FieldErrors{"name": "name is required"}
	}

	t := &Tag{
		AccountID: accountID,
		Name:      params.Name,
		Color:     params.Color,
	}

	if err := s.repo.CreateTag(ctx, t); err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return nil, apperr.FieldErrors{"name": "tag name already in use"}
		}

		return nil, fmt.Errorf("creating tag: %w", err)
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, accountID, id uuid.UUID) (*Tag, error) {
	return s.repo.GetTag(ctx, accountID, id)
}

func (s *Service) List(ctx context.Context, accountID uuid.UUID) ([]*Tag, error) {
	return s.repo.ListTags(ctx, accountID)
}

type UpdateParams struct {
	Name  *string
	Color *string
}

func (s *Service) Update(ctx context.Context, accountID, id uuid.UUID, params UpdateParams) (*Tag, error) {
	t, err := s.repo.GetTag(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, apperr.FieldErrors{"name": "name is required"}
		}

		t.Name = *params.Name
	}

	if params.Color != nil {
		t.Color = *params.Color
	}

	if err := s.repo.UpdateTag(ctx, t); err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return nil, apperr.FieldErrors{"name": "tag name already in use"}
		}

		return nil, fmt.Errorf("updating tag: %w", err)
	}

	return t, nil
}

func (s *Service) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	return s.repo.DeleteTag(ctx, accountID, id)
}

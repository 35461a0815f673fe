package tracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tracker
type Repository interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, accountID, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context, accountID uuid.UUID) ([]*Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, accountID, id uuid.UUID) error

	CreateIssue(ctx context.Context, i *Issue) error
	GetIssue(ctx context.Context, accountID, id uuid.UUID) (*Issue, error)
	ListIssues(ctx context.Context, accountID uuid.UUID, projectID *uuid.UUID) ([]*Issue, error)
	UpdateIssue(ctx context.Context, accountID uuid.UUID, i *Issue) error
	DeleteIssue(ctx context.Context, accountID, id uuid.UUID) error

	CreateComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, accountID, issueID uuid.UUID) ([]*Comment, error)
	DeleteComment(ctx context.Context, accountID, id uuid.UUID) error

	ProjectOwned(ctx context.Context, accountID, projectID uuid.UUID) (bool, error)
	IssueOwned(ctx context.Context, accountID, issueID uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProject(ctx context.Context, accountID uuid.UUID, name, description string) (*Project, error) {
	if name == "" {
		return nil, apperr.FieldErrors{"name": "name is required"}
	}

	p := &Project{
		AccountID:   accountID,
		Name:        name,
		Description: description,
	}

	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return p, nil
}

func (s *Service) GetProject(ctx context.Context, accountID, id uuid.UUID) (*Project, error) {
	return s.repo.GetProject(ctx, accountID, id)
}

func (s *Service) ListProjects(ctx context.Context, accountID uuid.UUID) ([]*Project, error) {
	return s.repo.ListProjects(ctx, accountID)
}

type ProjectUpdateParams struct {
	Name        *string
	Description *string
}

func (s *Service) UpdateProject(ctx context.Context, accountID, id uuid.UUID, params ProjectUpdateParams) (*Project, error) {
	p, err := s.repo.GetProject(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, apperr.FieldErrors{"name": "name is required"}
		}

		p.Name = *params.Name
	}

	if params.Description != nil {
		p.Description = *params.Description
	}

	if err := s.repo.UpdateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return p, nil
}

func (s *Service) DeleteProject(ctx context.Context, accountID, id uuid.UUID) error {
	return s.repo.DeleteProject(ctx, accountID, id)
}

type IssueCreateParams struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	AssigneeID  *uuid.UUID
	Status      IssueStatus
}

// CreateIssue attaches an issue to one of the account's projects; the
// reporter is always the requesting account.
func (s *Service) CreateIssue(ctx context.Context, accountID uuid.UUID, params IssueCreateParams) (*Issue, error) {
	if params.Title == "" {
		return nil, apperr.FieldErrors{"title": "title is required"}
	}

	if params.Status == "" {
		params.Status = StatusTodo
	}

	if !params.Status.Valid() {
		return nil, apperr.FieldErrors{"status": "unknown status"}
	}

	owned, err := s.repo.ProjectOwned(ctx, accountID, params.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("checking project ownership: %w", err)
	}

	if !owned {
		return nil, fmt.Errorf("project does not belong to account: %w", apperr.ErrPermissionDenied)
	}

	reporter := accountID
	i := &Issue{
		ProjectID:   params.ProjectID,
		Title:       params.Title,
		Description: params.Description,
		ReporterID:  &reporter,
		AssigneeID:  params.AssigneeID,
		Status:      params.Status,
	}

	if err := s.repo.CreateIssue(ctx, i); err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	return i, nil
}

func (s *Service) GetIssue(ctx context.Context, accountID, id uuid.UUID) (*Issue, error) {
	return s.repo.GetIssue(ctx, accountID, id)
}

func (s *Service) ListIssues(ctx context.Context, accountID uuid.UUID, projectID *uuid.UUID) ([]*Issue, error) {
	return s.repo.ListIssues(ctx, accountID, projectID)
}

type IssueUpdateParams struct {
	Title         *string
	Description   *string
	AssigneeID    *uuid.UUID
	ClearAssignee bool
	Status        *IssueStatus
}

func (s *Service) UpdateIssue(ctx context.Context, accountID, id uuid.UUID, params IssueUpdateParams) (*Issue, error) {
	i, err := s.repo.GetIssue(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		if *params.Title == "" {
			return nil, apperr.FieldErrors{"title": "title is required"}
		}

		i.Title = *params.Title
	}

	if params.Description != nil {
		i.Description = *params.Description
	}

	switch {
	case params.ClearAssignee:
		i.AssigneeID = nil
	case params.AssigneeID != nil:
		i.AssigneeID = params.AssigneeID
	}

	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, apperr.FieldErrors{"status": "unknown status"}
		}

		i.Status = *params.Status
	}

	if err := s.repo.UpdateIssue(ctx, accountID, i); err != nil {
		return nil, fmt.Errorf("updating issue: %w", err)
	}

	return s.repo.GetIssue(ctx, accountID, id)
}

func (s *Service) DeleteIssue(ctx context.Context, accountID, id uuid.UUID) error {
	return s.repo.DeleteIssue(ctx, accountID, id)
}

// CreateComment attaches a comment to an issue reachable through the
// account's projects; the author is always the requesting account.
func (s *Service) CreateComment(ctx context.Context, accountID, issueID uuid.UUID, body string) (*Comment, error) {
	if body == "" {
		return nil, apperr.FieldErrors{"body": "body is required"}
	}

	owned, err := s.repo.IssueOwned(ctx, accountID, issueID)
	if err != nil {
		return nil, fmt.Errorf("checking issue ownership: %w", err)
	}

	if !owned {
		return nil, fmt.Errorf("issue does not belong to account: %w", apperr.ErrPermissionDenied)
	}

	author := accountID
	c := &Comment{
		IssueID:  issueID,
		AuthorID: &author,
		Body:     body,
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	return c, nil
}

func (s *Service) ListComments(ctx context.Context, accountID, issueID uuid.UUID) ([]*Comment, error) {
	return s.repo.ListComments(ctx, accountID, issueID)
}

func (s *Service) DeleteComment(ctx context.Context, accountID, id uuid.UUID) error {
	return s.repo.DeleteComment(ctx, accountID, id)
}

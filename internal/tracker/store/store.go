package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/tracker"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) CreateProject(ctx context.Context, p *tracker.Project) error {
	query := `
		INSERT INTO projects (account_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, p.AccountID, p.Name, p.Description).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	return nil
}

func (s *Store) GetProject(ctx context.Context, accountID, id uuid.UUID) (*tracker.Project, error) {
	query := `
		SELECT id, account_id, name, description, created_at
		FROM projects
		WHERE id = $1 AND account_id = $2
	`

	var p tracker.Project

	err := s.db.QueryRowContext(ctx, query, id, accountID).
		Scan(&p.ID, &p.AccountID, &p.Name, &p.Description, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting project: %w", err)
	}

	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context, accountID uuid.UUID) ([]*tracker.Project, error) {
	query := `
		SELECT id, account_id, name, description, created_at
		FROM projects
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*tracker.Project

	for rows.Next() {
		var p tracker.Project
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}

		projects = append(projects, &p)
	}

	return projects, rows.Err()
}

func (s *Store) UpdateProject(ctx context.Context, p *tracker.Project) error {
	query := `UPDATE projects SET name = $1, description = $2 WHERE id = $3 AND account_id = $4`

	res, err := s.db.ExecContext(ctx, query, p.Name, p.Description, p.ID, p.AccountID)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteProject(ctx context.Context, accountID, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1 AND account_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

const selectIssueColumns = `
	i.id, i.project_id, i.title, i.description, i.reporter_id, i.assignee_id,
	i.status, i.created_at, i.updated_at
`

func scanIssue(s scanner) (*tracker.Issue, error) {
	var i tracker.Issue

	var statusStr string

	if err := s.Scan(
		&i.ID, &i.ProjectID, &i.Title, &i.Description, &i.ReporterID, &i.AssigneeID,
		&statusStr, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}

	i.Status = tracker.IssueStatus(statusStr)

	return &i, nil
}

func (s *Store) CreateIssue(ctx context.Context, i *tracker.Issue) error {
	query := `
		INSERT INTO issues (project_id, title, description, reporter_id, assignee_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		i.ProjectID, i.Title, i.Description, i.ReporterID, i.AssigneeID, i.Status,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating issue: %w", err)
	}

	return nil
}

// Ownership is one hop away: issue -> project -> account.
func (s *Store) GetIssue(ctx context.Context, accountID, id uuid.UUID) (*tracker.Issue, error) {
	query := `SELECT ` + selectIssueColumns + `
		FROM issues i
		JOIN projects p ON p.id = i.project_id
		WHERE i.id = $1 AND p.account_id = $2`

	i, err := scanIssue(s.db.QueryRowContext(ctx, query, id, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting issue: %w", err)
	}

	return i, nil
}

func (s *Store) ListIssues(ctx context.Context, accountID uuid.UUID, projectID *uuid.UUID) ([]*tracker.Issue, error) {
	query := `SELECT ` + selectIssueColumns + `
		FROM issues i
		JOIN projects p ON p.id = i.project_id
		WHERE p.account_id = $1`

	args := []any{accountID}

	if projectID != nil {
		query += ` AND i.project_id = $2`

		args = append(args, *projectID)
	}

	query += ` ORDER BY i.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var issues []*tracker.Issue

	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}

		issues = append(issues, i)
	}

	return issues, rows.Err()
}

func (s *Store) UpdateIssue(ctx context.Context, accountID uuid.UUID, i *tracker.Issue) error {
	query := `
		UPDATE issues i
		SET title = $1, description = $2, assignee_id = $3, status = $4, updated_at = NOW()
		FROM projects p
		WHERE i.id = $5 AND p.id = i.project_id AND p.account_id = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		i.Title, i.Description, i.AssigneeID, i.Status, i.ID, accountID,
	)
	if err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteIssue(ctx context.Context, accountID, id uuid.UUID) error {
	query := `
		DELETE FROM issues i
		USING projects p
		WHERE i.id = $1 AND p.id = i.project_id AND p.account_id = $2
	`

	res, err := s.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting issue: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) CreateComment(ctx context.Context, c *tracker.Comment) error {
	query := `
		INSERT INTO comments (issue_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.IssueID, c.AuthorID, c.Body).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating comment: %w", err)
	}

	return nil
}

// Ownership is two hops away: comment -> issue -> project -> account.
func (s *Store) ListComments(ctx context.Context, accountID, issueID uuid.UUID) ([]*tracker.Comment, error) {
	query := `
		SELECT c.id, c.issue_id, c.author_id, c.body, c.created_at
		FROM comments c
		JOIN issues i ON i.id = c.issue_id
		JOIN projects p ON p.id = i.project_id
		WHERE c.issue_id = $1 AND p.account_id = $2
		ORDER BY c.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, issueID, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*tracker.Comment

	for rows.Next() {
		var c tracker.Comment
		if err := rows.Scan(&c.ID, &c.IssueID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}

		comments = append(comments, &c)
	}

	return comments, rows.Err()
}

func (s *Store) DeleteComment(ctx context.Context, accountID, id uuid.UUID) error {
	query := `
		DELETE FROM comments c
		USING issues i, projects p
		WHERE c.id = $1 AND i.id = c.issue_id AND p.id = i.project_id AND p.account_id = $2
	`

	res, err := s.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) ProjectOwned(ctx context.Context, accountID, projectID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND account_id = $2)`

	var owned bool
	if err := s.db.QueryRowContext(ctx, query, projectID, accountID).Scan(&owned); err != nil {
		return false, fmt.Errorf("checking project ownership: %w", err)
	}

	return owned, nil
}

func (s *Store) IssueOwned(ctx context.Context, accountID, issueID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM issues i
			JOIN projects p ON p.id = i.project_id
			WHERE i.id = $1 AND p.account_id = $2
		)
	`

	var owned bool
	if err := s.db.QueryRowContext(ctx, query, issueID, accountID).Scan(&owned); err != nil {
		return false, fmt.Errorf("checking issue ownership: %w", err)
	}

	return owned, nil
}

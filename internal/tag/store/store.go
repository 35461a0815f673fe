package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/tag"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) CreateTag(ctx context.Context, t *tag.Tag) error {
	query := `
		INSERT INTO tags (account_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, t.AccountID, t.Name, t.Color).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag name already in use: %w", apperr.ErrValidation)
		}

		return fmt.Errorf("creating tag: %w", err)
	}

	return nil
}

func (s *Store) GetTag(ctx context.Context, accountID, id uuid.UUID) (*tag.Tag, error) {
	query := `SELECT id, account_id, name, color FROM tags WHERE id = $1 AND account_id = $2`

	var t tag.Tag

	err := s.db.QueryRowContext(ctx, query, id, accountID).
		Scan(&t.ID, &t.AccountID, &t.Name, &t.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting tag: %w", err)
	}

	return &t, nil
}

func (s *Store) ListTags(ctx context.Context, accountID uuid.UUID) ([]*tag.Tag, error) {
	query := `SELECT id, account_id, name, color FROM tags WHERE account_id = $1 ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []*tag.Tag

	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}

		tags = append(tags, &t)
	}

	return tags, rows.Err()
}

func (s *Store) UpdateTag(ctx context.Context, t *tag.Tag) error {
	query := `UPDATE tags SET name = $1, color = $2 WHERE id = $3 AND account_id = $4`

	res, err := s.db.ExecContext(ctx, query, t.Name, t.Color, t.ID, t.AccountID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tag name already in use: %w", apperr.ErrValidation)
		}

		return fmt.Errorf("updating tag: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTag(ctx context.Context, accountID, id uuid.UUID) error {
	query := `DELETE FROM tags WHERE id = $1 AND account_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

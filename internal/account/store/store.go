package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkov/tinycrm/internal/account"
	"github.com/avolkov/tinycrm/internal/apperr"
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

const selectAccountColumns = `id, username, COALESCE(email, ''), password_hash, active, created_at`

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	if err := s.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Active, &a.CreatedAt); err != nil {
		return nil, err
	}

	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (username, email, password_hash, active)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, a.Username, a.Email, a.PasswordHash, a.Active).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account already exists: %w", apperr.ErrValidation)
		}

		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE username = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting account by username: %w", err)
	}

	return a, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE email = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting account by email: %w", err)
	}

	return a, nil
}

// GetOrCreateByUsername resolves an account by username, inserting it on
// first sight. The unique constraint makes creation exactly-once under
// concurrent calls; the loser of the race falls back to the select.
func (s *Store) GetOrCreateByUsername(ctx context.Context, username string) (*account.Account, error) {
	query := `
		INSERT INTO accounts (username, active)
		VALUES ($1, TRUE)
		ON CONFLICT (username) DO NOTHING
		RETURNING ` + selectAccountColumns

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, username))
	if err == nil {
		return a, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("creating account on demand: %w", err)
	}

	return s.GetByUsername(ctx, username)
}

func (s *Store) GetOrCreateByEmail(ctx context.Context, email, username string) (*account.Account, error) {
	a, err := s.insertByEmail(ctx, email, username)
	if err == nil {
		return a, nil
	}

	// Email conflicts are absorbed by ON CONFLICT, so a surfaced unique
	// violation means a local account already holds this username.
	// Disambiguate and try once more.
	if isUniqueViolation(err) {
		a, err = s.insertByEmail(ctx, email, username+"-"+uuid.NewString()[:8])
		if err == nil {
			return a, nil
		}
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("creating account by email: %w", err)
	}

	return s.GetByEmail(ctx, email)
}

func (s *Store) insertByEmail(ctx context.Context, email, username string) (*account.Account, error) {
	query := `
		INSERT INTO accounts (username, email, active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (email) DO NOTHING
		RETURNING ` + selectAccountColumns

	return scanAccount(s.db.QueryRowContext(ctx, query, username, email))
}

func (s *Store) CreateToken(ctx context.Context, accountID uuid.UUID, token string) error {
	query := `INSERT INTO api_tokens (token, account_id) VALUES ($1, $2)`

	if _, err := s.db.ExecContext(ctx, query, token, accountID); err != nil {
		return fmt.Errorf("creating api token: %w", err)
	}

	return nil
}

func (s *Store) GetByToken(ctx context.Context, token string) (*account.Account, error) {
	query := `
		SELECT a.id, a.username, COALESCE(a.email, ''), a.password_hash, a.active, a.created_at
		FROM accounts a
		JOIN api_tokens t ON t.account_id = a.id
		WHERE t.token = $1
	`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting account by token: %w", err)
	}

	return a, nil
}

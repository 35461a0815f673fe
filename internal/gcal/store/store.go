package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/gcal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertCredentials writes the (token, refresh token, expiry) triple as
// a single statement so a failed refresh can never leave a mismatched
// partial update.
func (s *Store) UpsertCredentials(ctx context.Context, c *gcal.Credentials) error {
	query := `
		INSERT INTO google_credentials (account_id, access_token, refresh_token, expiry, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (account_id) DO UPDATE
		SET access_token = EXCLUDED.access_token,
		    refresh_token = CASE WHEN EXCLUDED.refresh_token = '' THEN google_credentials.refresh_token ELSE EXCLUDED.refresh_token END,
		    expiry = EXCLUDED.expiry,
		    updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, c.AccountID, c.AccessToken, c.RefreshToken, c.Expiry); err != nil {
		return fmt.Errorf("upserting credentials: %w", err)
	}

	return nil
}

func (s *Store) GetCredentials(ctx context.Context, accountID uuid.UUID) (*gcal.Credentials, error) {
	query := `
		SELECT account_id, access_token, refresh_token, expiry
		FROM google_credentials
		WHERE account_id = $1
	`

	var c gcal.Credentials

	err := s.db.QueryRowContext(ctx, query, accountID).
		Scan(&c.AccountID, &c.AccessToken, &c.RefreshToken, &c.Expiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting credentials: %w", err)
	}

	return &c, nil
}

// CreateState supersedes any in-flight handshake for the account.
func (s *Store) CreateState(ctx context.Context, accountID uuid.UUID, token string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning state tx: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx,
		`DELETE FROM oauth_states WHERE account_id = $1`, accountID,
	); err != nil {
		return fmt.Errorf("clearing prior state: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		`INSERT INTO oauth_states (token, account_id) VALUES ($1, $2)`, token, accountID,
	); err != nil {
		return fmt.Errorf("storing state: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing state: %w", err)
	}

	return nil
}

// ConsumeState deletes and returns the state in one statement, so a
// token can only ever be redeemed once.
func (s *Store) ConsumeState(ctx context.Context, token string) (uuid.UUID, error) {
	query := `DELETE FROM oauth_states WHERE token = $1 RETURNING account_id`

	var accountID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, token).Scan(&accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, apperr.ErrNotFound
		}

		return uuid.Nil, fmt.Errorf("consuming state: %w", err)
	}

	return accountID, nil
}

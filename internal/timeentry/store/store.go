package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/timeentry"
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

const selectEntryColumns = `
	e.id, e.account_id, e.client_id, c.name AS client_name,
	e.start_time, e.end_time, e.description
`

func scanEntry(s scanner) (*timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry

	var end sql.NullTime

	if err := s.Scan(
		&e.ID, &e.AccountID, &e.ClientID, &e.ClientName,
		&e.Start, &end, &e.Description,
	); err != nil {
		return nil, err
	}

	if end.Valid {
		t := end.Time
		e.End = &t
	}

	return &e, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) CreateEntry(ctx context.Context, e *timeentry.TimeEntry) error {
	return s.StartEntry(ctx, e)
}

// StartEntry inserts a running entry. The insert-from-select keeps the
// client ownership check and the insert in one statement, and the
// partial unique index on open entries rejects a second running timer.
func (s *Store) StartEntry(ctx context.Context, e *timeentry.TimeEntry) error {
	query := `
		INSERT INTO time_entries (account_id, client_id, start_time, description)
		SELECT $1, c.id, $2, $3
		FROM clients c
		WHERE c.id = $4 AND c.account_id = $1
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		e.AccountID, e.Start, e.Description, e.ClientID,
	).Scan(&e.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("client does not belong to account: %w", apperr.ErrNotFound)
		}

		if isUniqueViolation(err) {
			return fmt.Errorf("timer already running: %w", apperr.ErrValidation)
		}

		return fmt.Errorf("starting entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, accountID, id uuid.UUID) (*timeentry.TimeEntry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries e
		JOIN clients c ON c.id = e.client_id
		WHERE e.id = $1 AND e.account_id = $2`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting time entry: %w", err)
	}

	return e, nil
}

func (s *Store) GetOpenEntry(ctx context.Context, accountID uuid.UUID) (*timeentry.TimeEntry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries e
		JOIN clients c ON c.id = e.client_id
		WHERE e.account_id = $1 AND e.end_time IS NULL`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting open entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, accountID uuid.UUID, filter timeentry.ListFilter) ([]*timeentry.TimeEntry, int, error) {
	countQuery := `SELECT COUNT(*) FROM time_entries e WHERE e.account_id = $1`
	countArgs := []any{accountID}

	if filter.ClientID != nil {
		countQuery += ` AND e.client_id = $2`

		countArgs = append(countArgs, *filter.ClientID)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting time entries: %w", err)
	}

	query := `SELECT ` + selectEntryColumns + `
		FROM time_entries e
		JOIN clients c ON c.id = e.client_id
		WHERE e.account_id = $1`

	args := []any{accountID}
	argIdx := 2

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND e.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY e.start_time DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	var entries []*timeentry.TimeEntry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning time entry: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, total, rows.Err()
}

func (s *Store) UpdateEntry(ctx context.Context, e *timeentry.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET start_time = $1, end_time = $2, description = $3
		WHERE id = $4 AND account_id = $5
	`

	res, err := s.db.ExecContext(ctx, query, e.Start, e.End, e.Description, e.ID, e.AccountID)
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, accountID, id uuid.UUID) error {
	query := `DELETE FROM time_entries WHERE id = $1 AND account_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

// StopOpenEntry closes the running entry in a single statement; the
// WHERE clause makes concurrent stops resolve to exactly one winner.
func (s *Store) StopOpenEntry(ctx context.Context, accountID uuid.UUID, now time.Time) (*timeentry.TimeEntry, error) {
	query := `
		UPDATE time_entries
		SET end_time = $2
		WHERE account_id = $1 AND end_time IS NULL
		RETURNING id
	`

	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, query, accountID, now).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("stopping entry: %w", err)
	}

	return s.GetEntry(ctx, accountID, id)
}

// Toggle performs the start-or-stop transition atomically. The open
// entry is located under a row lock; when two toggles race on an idle
// account, the partial unique index rejects the second insert and the
// losing transaction retries, now observing the running entry.
func (s *Store) Toggle(ctx context.Context, accountID, clientID uuid.UUID, now time.Time) (*timeentry.TimeEntry, bool, error) {
	const maxAttempts = 2

	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		id, stopped, err := s.toggleOnce(ctx, accountID, clientID, now)
		if err != nil {
			if isUniqueViolation(err) {
				lastErr = err
				continue
			}

			return nil, false, err
		}

		e, err := s.GetEntry(ctx, accountID, id)
		if err != nil {
			return nil, false, err
		}

		return e, stopped, nil
	}

	return nil, false, fmt.Errorf("toggling timer: %w", lastErr)
}

func (s *Store) toggleOnce(ctx context.Context, accountID, clientID uuid.UUID, now time.Time) (uuid.UUID, bool, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("beginning toggle tx: %w", err)
	}
	defer dbTx.Rollback()

	var openID uuid.UUID

	err = dbTx.QueryRowContext(ctx,
		`SELECT id FROM time_entries WHERE account_id = $1 AND end_time IS NULL FOR UPDATE`,
		accountID,
	).Scan(&openID)

	switch {
	case err == nil:
		// running -> idle: stop whatever is open, whichever client was
		// passed.
		if _, err := dbTx.ExecContext(ctx,
			`UPDATE time_entries SET end_time = $1 WHERE id = $2`, now, openID,
		); err != nil {
			return uuid.Nil, false, fmt.Errorf("closing entry: %w", err)
		}

		if err := dbTx.Commit(); err != nil {
			return uuid.Nil, false, fmt.Errorf("committing toggle: %w", err)
		}

		return openID, true, nil

	case errors.Is(err, sql.ErrNoRows):
		// idle -> running.
		var newID uuid.UUID

		err := dbTx.QueryRowContext(ctx, `
			INSERT INTO time_entries (account_id, client_id, start_time)
			SELECT $1, c.id, $2
			FROM clients c
			WHERE c.id = $3 AND c.account_id = $1
			RETURNING id`,
			accountID, now, clientID,
		).Scan(&newID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return uuid.Nil, false, fmt.Errorf("client does not belong to account: %w", apperr.ErrNotFound)
			}

			return uuid.Nil, false, err
		}

		if err := dbTx.Commit(); err != nil {
			return uuid.Nil, false, fmt.Errorf("committing toggle: %w", err)
		}

		return newID, false, nil

	default:
		return uuid.Nil, false, fmt.Errorf("finding open entry: %w", err)
	}
}

func (s *Store) ClientOwned(ctx context.Context, accountID, clientID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1 AND account_id = $2)`

	var owned bool
	if err := s.db.QueryRowContext(ctx, query, clientID, accountID).Scan(&owned); err != nil {
		return false, fmt.Errorf("checking client ownership: %w", err)
	}

	return owned, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/client"
	"github.com/avolkov/tinycrm/internal/tag"
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

// Expected column order: id, account_id, name, email, phone, notes, status,
// birthday, created_at, total_income, total_expense.
func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var email, phone sql.NullString

	var statusStr string

	var birthday sql.NullTime

	var income, expense decimal.NullDecimal

	if err := s.Scan(
		&c.ID, &c.AccountID, &c.Name, &email, &phone, &c.Notes, &statusStr,
		&birthday, &c.CreatedAt, &income, &expense,
	); err != nil {
		return nil, err
	}

	c.Email = email.String
	c.Phone = phone.String
	c.Status = client.Status(statusStr)

	if birthday.Valid {
		t := birthday.Time
		c.Birthday = &t
	}

	c.TotalIncome = income.Decimal
	c.TotalExpense = expense.Decimal

	return &c, nil
}

// Per-client totals default to zero when no transactions match.
const selectClientColumns = `
	c.id, c.account_id, c.name, c.email, c.phone, c.notes, c.status, c.birthday, c.created_at,
	COALESCE((SELECT SUM(t.amount) FROM transactions t WHERE t.client_id = c.id AND t.transaction_type = 'income'), 0) AS total_income,
	COALESCE((SELECT SUM(t.amount) FROM transactions t WHERE t.client_id = c.id AND t.transaction_type = 'expense'), 0) AS total_expense
`

func (s *Store) CreateClient(ctx context.Context, c *client.Client, tagIDs []uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO clients (account_id, name, email, phone, notes, status, birthday)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		c.AccountID, c.Name, c.Email, c.Phone, c.Notes, c.Status, c.Birthday,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	if err := replaceTags(ctx, dbTx, c.ID, tagIDs); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, accountID, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients c
		WHERE c.id = $1 AND c.account_id = $2`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	if err := s.loadTags(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, accountID uuid.UUID, filter client.ListFilter) ([]*client.Client, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM clients WHERE account_id = $1`
	countArgs := []any{accountID}

	if filter.Status != nil {
		countQuery += ` AND status = $2`

		countArgs = append(countArgs, *filter.Status)
	}

	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting clients: %w", err)
	}

	query := `SELECT ` + selectClientColumns + `
		FROM clients c
		WHERE c.account_id = $1`

	args := []any{accountID}
	argIdx := 2

	if filter.Status != nil {
		query += fmt.Sprintf(" AND c.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating client rows: %w", err)
	}

	for _, c := range clients {
		if err := s.loadTags(ctx, c); err != nil {
			return nil, 0, err
		}
	}

	return clients, total, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client, tagIDs *[]uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE clients
		SET name = $1, email = NULLIF($2, ''), phone = NULLIF($3, ''), notes = $4, status = $5, birthday = $6
		WHERE id = $7 AND account_id = $8
	`

	res, err := dbTx.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Notes, c.Status, c.Birthday, c.ID, c.AccountID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	if tagIDs != nil {
		if err := replaceTags(ctx, dbTx, c.ID, *tagIDs); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing client update: %w", err)
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, accountID, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1 AND account_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) ListWithBirthday(ctx context.Context, accountID uuid.UUID) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients c
		WHERE c.account_id = $1 AND c.birthday IS NOT NULL`

	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing clients with birthdays: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (s *Store) CountOwnedTags(ctx context.Context, accountID uuid.UUID, tagIDs []uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM tags WHERE account_id = $1 AND id = ANY($2)`

	var n int
	if err := s.db.QueryRowContext(ctx, query, accountID, tagIDs).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting owned tags: %w", err)
	}

	return n, nil
}

func (s *Store) loadTags(ctx context.Context, c *client.Client) error {
	query := `
		SELECT t.id, t.account_id, t.name, t.color
		FROM tags t
		JOIN client_tags ct ON ct.tag_id = t.id
		WHERE ct.client_id = $1
		ORDER BY t.name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, c.ID)
	if err != nil {
		return fmt.Errorf("loading client tags: %w", err)
	}
	defer rows.Close()

	c.Tags = []tag.Tag{}

	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Name, &t.Color); err != nil {
			return fmt.Errorf("scanning tag: %w", err)
		}

		c.Tags = append(c.Tags, t)
	}

	return rows.Err()
}

func replaceTags(ctx context.Context, dbTx *sql.Tx, clientID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, err := dbTx.ExecContext(ctx, `DELETE FROM client_tags WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("clearing client tags: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err := dbTx.ExecContext(ctx,
			`INSERT INTO client_tags (client_id, tag_id) VALUES ($1, $2)`, clientID, tagID,
		); err != nil {
			return fmt.Errorf("attaching tag: %w", err)
		}
	}

	return nil
}

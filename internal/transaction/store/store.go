package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/transaction"
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

const selectTransactionColumns = `
	t.id, t.account_id, t.client_id, c.name AS client_name,
	t.amount, t.transaction_type, t.description, t.transaction_date
`

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var clientID *uuid.UUID

	var clientName sql.NullString

	var typeStr string

	if err := s.Scan(
		&tx.ID, &tx.AccountID, &clientID, &clientName,
		&tx.Amount, &typeStr, &tx.Description, &tx.Date,
	); err != nil {
		return nil, err
	}

	tx.ClientID = clientID
	tx.ClientName = clientName.String
	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, client_id, amount, transaction_type, description, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.AccountID, tx.ClientID, tx.Amount, tx.Type, tx.Description, tx.Date,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, accountID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN clients c ON t.client_id = c.id
		WHERE t.id = $1 AND t.account_id = $2`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, accountID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, int, error) {
	countQuery := `SELECT COUNT(*) FROM transactions t WHERE t.account_id = $1`
	countArgs := []any{accountID}
	countIdx := 2

	if filter.ClientID != nil {
		countQuery += fmt.Sprintf(" AND t.client_id = $%d", countIdx)

		countArgs = append(countArgs, *filter.ClientID)
		countIdx++
	}

	if filter.Type != nil {
		countQuery += fmt.Sprintf(" AND t.transaction_type = $%d", countIdx)

		countArgs = append(countArgs, *filter.Type)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		LEFT JOIN clients c ON t.client_id = c.id
		WHERE t.account_id = $1`

	args := []any{accountID}
	argIdx := 2

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND t.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.transaction_type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY t.transaction_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	return txs, total, rows.Err()
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET client_id = $1, amount = $2, transaction_type = $3, description = $4, transaction_date = $5
		WHERE id = $6 AND account_id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.ClientID, tx.Amount, tx.Type, tx.Description, tx.Date, tx.ID, tx.AccountID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, accountID, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1 AND account_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

// MonthlyBuckets sums income and expense per calendar month over all of
// the account's transactions. Months with no rows are absent.
func (s *Store) MonthlyBuckets(ctx context.Context, accountID uuid.UUID) ([]transaction.Bucket, error) {
	query := `
		SELECT date_trunc('month', transaction_date)::date AS period,
		       COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'income'), 0) AS income,
		       COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'expense'), 0) AS expense
		FROM transactions
		WHERE account_id = $1
		GROUP BY period
		ORDER BY period ASC
	`

	return s.queryBuckets(ctx, query, accountID)
}

// DailyBuckets sums income and expense per calendar day within [from, to).
func (s *Store) DailyBuckets(ctx context.Context, accountID uuid.UUID, from, to time.Time) ([]transaction.Bucket, error) {
	query := `
		SELECT date_trunc('day', transaction_date)::date AS period,
		       COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'income'), 0) AS income,
		       COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'expense'), 0) AS expense
		FROM transactions
		WHERE account_id = $1 AND transaction_date >= $2 AND transaction_date < $3
		GROUP BY period
		ORDER BY period ASC
	`

	return s.queryBuckets(ctx, query, accountID, from, to)
}

func (s *Store) queryBuckets(ctx context.Context, query string, args ...any) ([]transaction.Bucket, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregating buckets: %w", err)
	}
	defer rows.Close()

	var buckets []transaction.Bucket

	for rows.Next() {
		var b transaction.Bucket
		if err := rows.Scan(&b.Period, &b.Income, &b.Expense); err != nil {
			return nil, fmt.Errorf("scanning bucket: %w", err)
		}

		buckets = append(buckets, b)
	}

	return buckets, rows.Err()
}

func (s *Store) ClientOwned(ctx context.Context, accountID, clientID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1 AND account_id = $2)`

	var owned bool
	if err := s.db.QueryRowContext(ctx, query, clientID, accountID).Scan(&owned); err != nil {
		return false, fmt.Errorf("checking client ownership: %w", err)
	}

	return owned, nil
}

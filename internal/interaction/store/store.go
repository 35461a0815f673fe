package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/interaction"
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

const selectInteractionColumns = `
	i.id, i.client_id, i.interaction_type, i.interaction_date, i.description,
	i.due_date, i.status, i.completed_at
`

func scanInteraction(s scanner) (*interaction.Interaction, error) {
	var in interaction.Interaction

	var typeStr, statusStr string

	var dueDate, completedAt sql.NullTime

	if err := s.Scan(
		&in.ID, &in.ClientID, &typeStr, &in.Date, &in.Description,
		&dueDate, &statusStr, &completedAt,
	); err != nil {
		return nil, err
	}

	in.Type = interaction.Type(typeStr)
	in.Status = interaction.SLAStatus(statusStr)

	if dueDate.Valid {
		t := dueDate.Time
		in.DueDate = &t
	}

	if completedAt.Valid {
		t := completedAt.Time
		in.CompletedAt = &t
	}

	return &in, nil
}

func (s *Store) CreateInteraction(ctx context.Context, in *interaction.Interaction) error {
	query := `
		INSERT INTO interactions (client_id, interaction_type, interaction_date, description, due_date, status, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		in.ClientID, in.Type, in.Date, in.Description, in.DueDate, in.Status, in.CompletedAt,
	).Scan(&in.ID)
	if err != nil {
		return fmt.Errorf("creating interaction: %w", err)
	}

	return nil
}

// Ownership is one hop away: interaction -> client -> account.
func (s *Store) GetInteraction(ctx context.Context, accountID, id uuid.UUID) (*interaction.Interaction, error) {
	query := `SELECT ` + selectInteractionColumns + `
		FROM interactions i
		JOIN clients c ON c.id = i.client_id
		WHERE i.id = $1 AND c.account_id = $2`

	in, err := scanInteraction(s.db.QueryRowContext(ctx, query, id, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting interaction: %w", err)
	}

	return in, nil
}

func (s *Store) ListInteractions(ctx context.Context, accountID uuid.UUID, filter interaction.ListFilter) ([]*interaction.Interaction, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM interactions i
		JOIN clients c ON c.id = i.client_id
		WHERE c.account_id = $1`
	countArgs := []any{accountID}

	if filter.ClientID != nil {
		countQuery += ` AND i.client_id = $2`

		countArgs = append(countArgs, *filter.ClientID)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting interactions: %w", err)
	}

	query := `SELECT ` + selectInteractionColumns + `
		FROM interactions i
		JOIN clients c ON c.id = i.client_id
		WHERE c.account_id = $1`

	args := []any{accountID}
	argIdx := 2

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND i.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY i.interaction_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing interactions: %w", err)
	}
	defer rows.Close()

	var ins []*interaction.Interaction

	for rows.Next() {
		in, err := scanInteraction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning interaction: %w", err)
		}

		ins = append(ins, in)
	}

	return ins, total, rows.Err()
}

func (s *Store) UpdateInteraction(ctx context.Context, accountID uuid.UUID, in *interaction.Interaction) error {
	query := `
		UPDATE interactions i
		SET interaction_type = $1, interaction_date = $2, description = $3, due_date = $4, status = $5, completed_at = $6
		FROM clients c
		WHERE i.id = $7 AND c.id = i.client_id AND c.account_id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		in.Type, in.Date, in.Description, in.DueDate, in.Status, in.CompletedAt, in.ID, accountID,
	)
	if err != nil {
		return fmt.Errorf("updating interaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteInteraction(ctx context.Context, accountID, id uuid.UUID) error {
	query := `
		DELETE FROM interactions i
		USING clients c
		WHERE i.id = $1 AND c.id = i.client_id AND c.account_id = $2
	`

	res, err := s.db.ExecContext(ctx, query, id, accountID)
	if err != nil {
		return fmt.Errorf("deleting interaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) ClientOwned(ctx context.Context, accountID, clientID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1 AND account_id = $2)`

	var owned bool
	if err := s.db.QueryRowContext(ctx, query, clientID, accountID).Scan(&owned); err != nil {
		return false, fmt.Errorf("checking client ownership: %w", err)
	}

	return owned, nil
}

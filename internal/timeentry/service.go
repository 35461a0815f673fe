package timeentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=timeentry
type Repository interface {
	CreateEntry(ctx context.Context, e *TimeEntry) error
	GetEntry(ctx context.Context, accountID, id uuid.UUID) (*TimeEntry, error)
	ListEntries(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*TimeEntry, int, error)
	UpdateEntry(ctx context.Context, e *TimeEntry) error
	DeleteEntry(ctx context.Context, accountID, id uuid.UUID) error

	// GetOpenEntry returns the account's running entry, apperr.ErrNotFound
	// when the account is idle.
	GetOpenEntry(ctx context.Context, accountID uuid.UUID) (*TimeEntry, error)

	// Toggle executes the start-or-stop transition as one serializable
	// unit: it closes the open entry if one exists, otherwise starts a
	// new one for the given client. The second return value is true when
	// an entry was stopped.
	Toggle(ctx context.Context, accountID, clientID uuid.UUID, now time.Time) (*TimeEntry, bool, error)

	// StartEntry inserts a running entry, failing if one is already open.
	StartEntry(ctx context.Context, e *TimeEntry) error

	// StopOpenEntry closes the running entry, apperr.ErrNotFound when idle.
	StopOpenEntry(ctx context.Context, accountID uuid.UUID, now time.Time) (*TimeEntry, error)

	ClientOwned(ctx context.Context, accountID, clientID uuid.UUID) (bool, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	ClientID    uuid.UUID
	Start       time.Time
	End         *time.Time
	Description string
}

type UpdateParams struct {
	Start       *time.Time
	End         *time.Time
	Description *string
}

type ListFilter struct {
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}

// Create is the generic write path. Entries are never born closed: a
// non-null end at creation time is rejected, closing happens only
// through the stop transition.
func (s *Service) Create(ctx context.Context, accountID uuid.UUID, params CreateParams) (*TimeEntry, error) {
	if params.End != nil {
		return nil, apperr.FieldErrors{"end_time": "a new entry cannot be created already finished"}
	}

	return s.start(ctx, accountID, params)
}

// Start begins a timer for the given client. Unlike Toggle it never
// silently stops a running timer: starting while running is an error.
func (s *Service) Start(ctx context.Context, accountID, clientID uuid.UUID, description string) (*TimeEntry, error) {
	return s.start(ctx, accountID, CreateParams{ClientID: clientID, Description: description})
}

func (s *Service) start(ctx context.Context, accountID uuid.UUID, params CreateParams) (*TimeEntry, error) {
	if err := s.checkClientOwnership(ctx, accountID, params.ClientID); err != nil {
		return nil, err
	}

	e := &TimeEntry{
		AccountID:   accountID,
		ClientID:    params.ClientID,
		Start:       params.Start,
		Description: params.Description,
	}

	if e.Start.IsZero() {
		e.Start = s.now()
	}

	if err := s.repo.StartEntry(ctx, e); err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return nil, apperr.FieldErrors{"timer": "a timer is already running"}
		}

		return nil, fmt.Errorf("starting timer: %w", err)
	}

	return s.repo.GetEntry(ctx, accountID, e.ID)
}

// Stop closes the account's running timer.
func (s *Service) Stop(ctx context.Context, accountID uuid.UUID) (*TimeEntry, error) {
	e, err := s.repo.StopOpenEntry(ctx, accountID, s.now())
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Toggle is the single start-or-stop action: when a timer is running it
// stops it, whichever client was passed; when idle it starts one for
// the given client. The repository executes the transition atomically,
// so two concurrent toggles cannot both observe idle and both start.
func (s *Service) Toggle(ctx context.Context, accountID, clientID uuid.UUID) (*TimeEntry, bool, error) {
	return s.repo.Toggle(ctx, accountID, clientID, s.now())
}

// Active returns the running entry, or nil when the account is idle.
func (s *Service) Active(ctx context.Context, accountID uuid.UUID) (*TimeEntry, error) {
	e, err := s.repo.GetOpenEntry(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding open entry: %w", err)
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, accountID, id uuid.UUID) (*TimeEntry, error) {
	return s.repo.GetEntry(ctx, accountID, id)
}

func (s *Service) List(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*TimeEntry, int, error) {
	return s.repo.ListEntries(ctx, accountID, filter)
}

func (s *Service) Update(ctx context.Context, accountID, id uuid.UUID, params UpdateParams) (*TimeEntry, error) {
	e, err := s.repo.GetEntry(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	if params.Start != nil {
		e.Start = *params.Start
	}

	if params.End != nil {
		e.End = params.End
	}

	if params.Description != nil {
		e.Description = *params.Description
	}

	if e.End != nil && e.End.Before(e.Start) {
		return nil, apperr.FieldErrors{"end_time": "end must not precede start"}
	}

	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("updating time entry: %w", err)
	}

	return s.repo.GetEntry(ctx, accountID, id)
}

func (s *Service) Delete(ctx context.Context, accountID, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, accountID, id)
}

func (s *Service) checkClientOwnership(ctx context.Context, accountID, clientID uuid.UUID) error {
	owned, err := s.repo.ClientOwned(ctx, accountID, clientID)
	if err != nil {
		return fmt.Errorf("checking client ownership: %w", err)
	}

	if !owned {
		// Foreign-owned must look absent, so this is NotFound rather
		// than PermissionDenied.
		return fmt.Errorf("client does not belong to account: %w", apperr.ErrNotFound)
	}

	return nil
}

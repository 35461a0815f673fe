package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/tinycrm/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetOrCreateByUsername(ctx context.Context, username string) (*Account, error)
	GetOrCreateByEmail(ctx context.Context, email, username string) (*Account, error)

	CreateToken(ctx context.Context, accountID uuid.UUID, token string) error
	GetByToken(ctx context.Context, token string) (*Account, error)
}

// Verifier checks an externally issued identity assertion and returns
// the verified email it carries. Implementations live outside this
// package; verification internals are the provider's business.
type Verifier interface {
	VerifyIDToken(ctx context.Context, rawToken string) (email string, err error)
}

type Service struct {
	repo     Repository
	verifier Verifier
}

func NewService(repo Repository, verifier Verifier) *Service {
	return &Service{repo: repo, verifier: verifier}
}

type RegisterParams struct {
	Username  string
	Password  string
	Password2 string
}

// Register creates a local account and issues its first API token.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Account, string, error) {
	fields := apperr.FieldErrors{}

	if params.Username == "" {
		fields["username"] = "username is required"
	}

	if params.Password == "" {
		fields["password"] = "password is required"
	}

	if params.Password != params.Password2 {
		fields["password"] = "passwords do not match"
	}

	if len(fields) > 0 {
		return nil, "", fields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	a := &Account{
		Username:     params.Username,
		PasswordHash: string(hash),
		Active:       true,
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return nil, "", apperr.FieldErrors{"username": "username already taken"}
		}

		return nil, "", fmt.Errorf("creating account: %w", err)
	}

	token, err := s.IssueToken(ctx, a)
	if err != nil {
		return nil, "", err
	}

	return a, token, nil
}

// Login verifies a username/password pair and issues a fresh API token.
func (s *Service) Login(ctx context.Context, username, password string) (*Account, string, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", apperr.ErrUnauthenticated
		}

		return nil, "", fmt.Errorf("looking up account: %w", err)
	}

	if !a.Active || !a.HasUsablePassword() {
		return nil, "", apperr.ErrUnauthenticated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.ErrUnauthenticated
	}

	token, err := s.IssueToken(ctx, a)
	if err != nil {
		return nil, "", err
	}

	return a, token, nil
}

// ResolveGoogle verifies an externally issued identity assertion and
// resolves (creating on first sight) the account keyed by its verified
// email. Such accounts have no usable local password.
func (s *Service) ResolveGoogle(ctx context.Context, rawToken string) (*Account, string, error) {
	email, err := s.verifier.VerifyIDToken(ctx, rawToken)
	if err != nil {
		if errors.Is(err, apperr.ErrUnavailable) {
			return nil, "", err
		}

		return nil, "", apperr.ErrUnauthenticated
	}

	a, err := s.repo.GetOrCreateByEmail(ctx, email, email)
	if err != nil {
		return nil, "", fmt.Errorf("resolving account by email: %w", err)
	}

	token, err := s.IssueToken(ctx, a)
	if err != nil {
		return nil, "", err
	}

	return a, token, nil
}

// ResolveGlobal resolves the service account behind the static shared
// secret, creating it on first sight.
func (s *Service) ResolveGlobal(ctx context.Context, username string) (*Account, error) {
	a, err := s.repo.GetOrCreateByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolving global account: %w", err)
	}

	return a, nil
}

// ResolveID maps a session-cookie account id to an active account.
func (s *Service) ResolveID(ctx context.Context, id uuid.UUID) (*Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthenticated
		}

		return nil, fmt.Errorf("resolving account: %w", err)
	}

	if !a.Active {
		return nil, apperr.ErrUnauthenticated
	}

	return a, nil
}

// ResolveToken maps a previously issued opaque API token to its account.
func (s *Service) ResolveToken(ctx context.Context, token string) (*Account, error) {
	a, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthenticated
		}

		return nil, fmt.Errorf("resolving token: %w", err)
	}

	if !a.Active {
		return nil, apperr.ErrUnauthenticated
	}

	return a, nil
}

// IssueToken mints and persists a new opaque API token for the account.
func (s *Service) IssueToken(ctx context.Context, a *Account) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}

	token := hex.EncodeToString(buf)

	if err := s.repo.CreateToken(ctx, a.ID, token); err != nil {
		return "", fmt.Errorf("persisting token: %w", err)
	}

	return token, nil
}

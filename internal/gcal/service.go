package gcal

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/avolkov/tinycrm/internal/apperr"
)

// Scopes requested during the handshake.
var scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/contacts.readonly",
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=gcal
type Repository interface {
	UpsertCredentials(ctx context.Context, c *Credentials) error
	GetCredentials(ctx context.Context, accountID uuid.UUID) (*Credentials, error)

	// CreateState stores a fresh handshake state for the account,
	// superseding any prior in-flight attempt.
	CreateState(ctx context.Context, accountID uuid.UUID, token string) error

	// ConsumeState deletes the state and returns its account. Unknown or
	// already-consumed states fail with apperr.ErrNotFound.
	ConsumeState(ctx context.Context, token string) (uuid.UUID, error)
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Timeout      time.Duration
}

type Service struct {
	repo   Repository
	oauth  *oauth2.Config
	client *http.Client
}

func NewService(repo Repository, cfg Config) *Service {
	return &Service{
		repo: repo,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Status reports whether the account has completed the handshake.
func (s *Service) Status(ctx context.Context, accountID uuid.UUID) (bool, error) {
	_, err := s.repo.GetCredentials(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("checking credentials: %w", err)
	}

	return true, nil
}

// AuthURL starts the handshake: a single-use random state token is
// stored as CSRF protection and folded into the authorization URL.
func (s *Service) AuthURL(ctx context.Context, accountID uuid.UUID) (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating state token: %w", err)
	}

	state := hex.EncodeToString(buf)

	if err := s.repo.CreateState(ctx, accountID, state); err != nil {
		return "", fmt.Errorf("storing handshake state: %w", err)
	}

	return s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// Callback completes the handshake: the state is consumed exactly once,
// the code is exchanged, and the credential triple is stored whole.
func (s *Service) Callback(ctx context.Context, state, code string) error {
	accountID, err := s.repo.ConsumeState(ctx, state)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.FieldErrors{"state": "unknown or stale handshake state"}
		}

		return fmt.Errorf("consuming handshake state: %w", err)
	}

	tok, err := s.oauth.Exchange(s.outboundContext(ctx), code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %v: %w", err, apperr.ErrUnavailable)
	}

	return s.persistToken(ctx, accountID, tok)
}

// tokenSource wraps the stored credentials. Refreshes happen inside the
// oauth2 token source; a changed token is re-persisted as one row.
func (s *Service) token(ctx context.Context, accountID uuid.UUID) (*oauth2.Token, error) {
	creds, err := s.repo.GetCredentials(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.FieldErrors{"google": "google account is not connected"}
		}

		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	stored := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		Expiry:       creds.Expiry,
	}

	tok, err := s.oauth.TokenSource(s.outboundContext(ctx), stored).Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing provider token: %v: %w", err, apperr.ErrUnavailable)
	}

	if tok.AccessToken != stored.AccessToken {
		if err := s.persistToken(ctx, accountID, tok); err != nil {
			return nil, err
		}
	}

	return tok, nil
}

func (s *Service) persistToken(ctx context.Context, accountID uuid.UUID, tok *oauth2.Token) error {
	creds := &Credentials{
		AccountID:    accountID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}

	if err := s.repo.UpsertCredentials(ctx, creds); err != nil {
		return fmt.Errorf("storing credentials: %w", err)
	}

	return nil
}

// outboundContext routes oauth2's own HTTP traffic through the
// timeout-bounded client.
func (s *Service) outboundContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.client)
}

package account

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avolkov/tinycrm/internal/apperr"
)

// SessionClaims are the claims carried by the session cookie token.
type SessionClaims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
}

// NewSessionToken signs a session token for the account.
func NewSessionToken(accountID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		AccountID: accountID.String(),
	})

	return token.SignedString(secret)
}

// ParseSessionToken verifies a session token and returns the account id.
func ParseSessionToken(tokenString string, secret []byte) (uuid.UUID, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, apperr.ErrUnauthenticated
	}

	id, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return uuid.Nil, apperr.ErrUnauthenticated
	}

	return id, nil
}

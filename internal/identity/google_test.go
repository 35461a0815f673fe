package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/tinycrm/internal/apperr"
	"github.com/avolkov/tinycrm/internal/identity"
)

// An empty audience would let any app's token through, so an
// unconfigured verifier must accept nothing.
func TestGoogleVerifier_UnconfiguredClientID(t *testing.T) {
	v := identity.NewGoogleVerifier("", time.Second)

	email, err := v.VerifyIDToken(context.Background(), "some-id-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	assert.Empty(t, email)
}

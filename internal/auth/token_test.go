package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackhub/feedbackhub/internal/domain"
)

func newTestTokenService(ttl time.Duration) *TokenService {
	return NewTokenService([]byte("test-signing-key"), "feedbackhub", ttl)
}

func TestTokenRoundTrip(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	token, err := ts.Sign(42, domain.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleManager, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "feedbackhub", claims.Issuer)
}

func TestVerifyExpiredToken(t *testing.T) {
	ts := newTestTokenService(-time.Minute)

	token, err := ts.Sign(1, domain.RoleCollaborator)
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyWrongKey(t *testing.T) {
	token, err := newTestTokenService(time.Hour).Sign(1, domain.RoleCollaborator)
	require.NoError(t, err)

	other := NewTokenService([]byte("a-different-key"), "feedbackhub", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyWrongIssuer(t *testing.T) {
	foreign := NewTokenService([]byte("test-signing-key"), "someone-else", time.Hour)
	token, err := foreign.Sign(1, domain.RoleCollaborator)
	require.NoError(t, err)

	_, err = newTestTokenService(time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	ts := newTestTokenService(time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := ts.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := NewSessionToken("super-secret", 42, "Ana", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	claims, err := ParseSessionToken("super-secret", tok.Token)
	require.NoError(t, err)

	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
	assert.Equal(t, "Ana", claims.Name)
}

func TestParseSessionToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := NewSessionToken("super-secret", 1, "u", -time.Second)
	require.NoError(t, err)

	_, err = ParseSessionToken("super-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewSessionToken("right-secret", 1, "u", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken("wrong-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseSessionToken("k", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionClaims_UserID_BadSubject(t *testing.T) {
	t.Parallel()

	var c SessionClaims
	c.Subject = "not-a-number"
	_, err := c.UserID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTCodec_RoundTrip(t *testing.T) {
	issuer, verifier := NewJWTCodec("test-secret")

	token, err := issuer.Issue("user-1", "alice@example.org", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "alice@example.org", email)
}

func TestJWTCodec_WrongSecret(t *testing.T) {
	issuer, _ := NewJWTCodec("secret-a")
	_, verifier := NewJWTCodec("secret-b")

	token, err := issuer.Issue("user-1", "alice@example.org", time.Hour)
	require.NoError(t, err)

	_, _, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_Expired(t *testing.T) {
	issuer, verifier := NewJWTCodec("test-secret")

	token, err := issuer.Issue("user-1", "alice@example.org", -time.Minute)
	require.NoError(t, err)

	_, _, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_Garbage(t *testing.T) {
	_, verifier := NewJWTCodec("test-secret")

	_, _, err := verifier.Verify("not-a-jwt")
	assert.Error(t, err)
}

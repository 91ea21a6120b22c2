package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordNeverStoresPlaintext(t *testing.T) {
	hash, err := HashPassword("Password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Password123", hash)
	assert.True(t, VerifyPassword(hash, "Password123"))
	assert.False(t, VerifyPassword(hash, "WrongPassword"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "user-1", "test@example.com", 60)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	sub, email, err := ParseAccessToken("s3cret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
	assert.Equal(t, "test@example.com", email)
}

func TestParseAccessTokenRejects(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "user-1", "test@example.com", 60)
	require.NoError(t, err)

	_, _, err = ParseAccessToken("other", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewAccessToken("s3cret", "user-1", "test@example.com", -5)
	require.NoError(t, err)
	_, _, err = ParseAccessToken("s3cret", expired.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	raw, err := noExp.SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, _, err = ParseAccessToken("s3cret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = ParseAccessToken("s3cret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

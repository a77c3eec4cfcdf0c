package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func sign(t *testing.T, method jwt.SigningMethod, key any, claims AccessClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func claimsFor(sub string, exp time.Time) AccessClaims {
	return AccessClaims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func TestAccessClaimsFromToken_Valid(t *testing.T) {
	tok := sign(t, jwt.SigningMethodHS256, secret, claimsFor("5a8f0c3e-8a4e-4c53-9d1e-1f0f2b7f6a10", time.Now().Add(time.Minute)))

	claims, err := AccessClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "5a8f0c3e-8a4e-4c53-9d1e-1f0f2b7f6a10", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestAccessClaimsFromToken_Rejects(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, secret, claimsFor("u", time.Now().Add(-time.Minute)))
		_, err := AccessClaimsFromToken(tok, secret)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, []byte("other"), claimsFor("u", time.Now().Add(time.Minute)))
		_, err := AccessClaimsFromToken(tok, secret)
		assert.Error(t, err)
	})

	t.Run("other hmac alg", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS512, secret, claimsFor("u", time.Now().Add(time.Minute)))
		_, err := AccessClaimsFromToken(tok, secret)
		assert.Error(t, err)
	})

	t.Run("no expiry", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, secret, AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}})
		_, err := AccessClaimsFromToken(tok, secret)
		assert.Error(t, err)
	})

	t.Run("no subject", func(t *testing.T) {
		tok := sign(t, jwt.SigningMethodHS256, secret, claimsFor("", time.Now().Add(time.Minute)))
		_, err := AccessClaimsFromToken(tok, secret)
		assert.ErrorIs(t, err, ErrMissingSubject)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := AccessClaimsFromToken("not-a-token", secret)
		assert.Error(t, err)
	})
}

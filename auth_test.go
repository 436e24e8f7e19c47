package main

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifierRoundTrip(t *testing.T) {
	verifier := NewJWTVerifier(testJWTSecret, "speedle")

	uid, err := verifier.Verify(testToken(t, "user-123"))
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)
}

func TestJWTVerifierRejects(t *testing.T) {
	verifier := NewJWTVerifier(testJWTSecret, "speedle")

	sign := func(claims jwt.RegisteredClaims, secret string) string {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}
	valid := jwt.RegisteredClaims{
		Subject:   "user-123",
		Issuer:    "speedle",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	t.Run("garbage token", func(t *testing.T) {
		_, err := verifier.Verify("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := verifier.Verify(sign(valid, "another-secret-another-secret-xx"))
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := valid
		claims.Issuer = "someone-else"
		_, err := verifier.Verify(sign(claims, testJWTSecret))
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := valid
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := verifier.Verify(sign(claims, testJWTSecret))
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := valid
		claims.Subject = ""
		_, err := verifier.Verify(sign(claims, testJWTSecret))
		assert.Error(t, err)
	})

	t.Run("unconfigured verifier", func(t *testing.T) {
		_, err := NewJWTVerifier("", "").Verify(sign(valid, testJWTSecret))
		assert.Error(t, err)
	})
}

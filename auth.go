package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier resolves a bearer credential to an opaque user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// JWTVerifier validates HS256 bearer tokens and extracts the subject.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier creates a verifier for tokens signed with the given secret.
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses and validates a token, returning the user id it carries.
func (v *JWTVerifier) Verify(tokenString string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("verifier not configured")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}

// optionalAuth resolves the Authorization header to a user id when present
// and valid. Missing or unverifiable credentials degrade to anonymous; they
// never fail the request.
func (app *App) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.Next()
			return
		}
		uid, err := app.Verifier.Verify(token)
		if err != nil {
			logWarn("Token verification failed, continuing as anonymous: %v", err)
			c.Next()
			return
		}
		c.Set(userIDContextKey, uid)
		c.Next()
	}
}

// requireAuth aborts with 401 unless optionalAuth resolved a user id.
func (app *App) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(userIDContextKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrorAuthRequired})
			return
		}
		c.Next()
	}
}

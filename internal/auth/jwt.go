// Package auth consumes the external identity system's bearer tokens
// and resolves them to an authenticated principal. Credential checks,
// signup and token issuance happen outside this service; the core only
// verifies the token signature and looks the user up.
package auth

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the authenticated identity injected into each request.
type Principal struct {
	UserID      uuid.UUID
	Username    string
	IsActive    bool
	IsSuperuser bool
}

// TokenVerifier extracts a user ID from a bearer token.
type TokenVerifier interface {
	ValidateToken(authHeader string) (uuid.UUID, bool)
}

// JWTVerifier verifies HMAC-signed access tokens issued by the
// identity service.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWT verifier with the shared signing
// secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// ExtractUserIDFromToken verifies the token and returns the user ID
// carried in the sub claim.
func (v *JWTVerifier) ExtractUserIDFromToken(tokenString string) (uuid.UUID, error) {
	// Remove "Bearer " prefix if present
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to verify token: %w", err)
	}

	if !token.Valid {
		return uuid.Nil, fmt.Errorf("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("no sub claim in token")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("sub is not a valid user id: %w", err)
	}

	return userID, nil
}

// ValidateToken is a middleware-friendly wrapper around token
// extraction.
func (v *JWTVerifier) ValidateToken(authHeader string) (uuid.UUID, bool) {
	if authHeader == "" {
		return uuid.Nil, false
	}

	userID, err := v.ExtractUserIDFromToken(authHeader)
	if err != nil {
		log.Printf("JWT validation error: %v", err)
		return uuid.Nil, false
	}

	return userID, true
}

// IssueToken signs a short-lived access token for the given user.
// Used by the seed command and tests; production tokens come from the
// identity service.
func (v *JWTVerifier) IssueToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(v.secret)
}

// MockTokenVerifier accepts any token of the form "Bearer <uuid>".
// For development and tests only.
type MockTokenVerifier struct{}

func NewMockTokenVerifier() *MockTokenVerifier {
	return &MockTokenVerifier{}
}

func (m *MockTokenVerifier) ValidateToken(authHeader string) (uuid.UUID, bool) {
	if authHeader == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/derin/classpanel/internal/app/models"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
)

// Claims defines the token content this service reads. Tokens are issued by
// the external auth collaborator; we only parse them to learn the caller's
// identity and role.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenReader validates bearer tokens issued by the auth collaborator.
type TokenReader struct {
	secretKey []byte
}

// NewTokenReader creates a TokenReader for the shared signing secret.
func NewTokenReader(secret string) *TokenReader {
	return &TokenReader{secretKey: []byte(secret)}
}

// ParseAuthorizationHeader extracts and validates the bearer token from an
// Authorization header value. An empty header is not an error; it returns
// nil claims (anonymous caller).
func (r *TokenReader) ParseAuthorizationHeader(header string) (*Claims, error) {
	if header == "" {
		return nil, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, ErrInvalidFormat
	}

	return r.Parse(parts[1])
}

// Parse validates a raw token string and returns its claims.
func (r *TokenReader) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return r.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}

// RoleOf maps claims to a user role, falling back to anonymous for missing
// or unknown values.
func RoleOf(claims *Claims) models.RoleType {
	if claims == nil {
		return ""
	}
	role := models.RoleType(claims.Role)
	if !role.IsValid() {
		return ""
	}
	return role
}

// Package auth issues and reads session tokens and resolves the identity
// behind a request.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of a session token and of its cookie.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidToken covers every decode failure: bad signature, malformed,
	// expired or missing claims. Callers treat it as "anonymous".
	ErrInvalidToken = errors.New("invalid session token")
	// ErrMissingSigningSecret is a configuration error and must stop startup.
	ErrMissingSigningSecret = errors.New("session signing secret is not configured")
)

// Claims is the JWT payload of a session token.
type Claims struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies session tokens with a single HS256 key.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec returns ErrMissingSigningSecret when secret is empty.
// A non-positive ttl falls back to DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrMissingSigningSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// TTL is the lifetime applied by Issue.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for identity that expires after the codec TTL.
func (c *TokenCodec) Issue(identity domain.Identity) (string, error) {
	return c.IssueWithTTL(identity, c.ttl)
}

// IssueWithTTL signs a token for identity that expires after ttl.
func (c *TokenCodec) IssueWithTTL(identity domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		ID:        identity.ID,
		Email:     identity.Email,
		Role:      string(identity.Role),
		Name:      identity.Name,
		AvatarURL: identity.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns the identity it carries. Every failure
// wraps ErrInvalidToken.
func (c *TokenCodec) Decode(token string) (domain.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.ID == "" || claims.Email == "" || claims.Role == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing required claims", ErrInvalidToken)
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return domain.Identity{
		ID:        claims.ID,
		Email:     claims.Email,
		Role:      role,
		Name:      claims.Name,
		AvatarURL: claims.AvatarURL,
	}, nil
}

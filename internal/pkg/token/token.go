// Package token issues and verifies the signed credential tokens that carry a
// principal's identity between requests. Tokens are HS256 JWTs holding only
// the subject identity; role state is deliberately excluded so privilege
// changes take effect without re-issuing tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "storefront-api"

var (
	// ErrSecretIsRequired is returned when a Service is created without a signing secret.
	ErrSecretIsRequired = errors.New("signing secret is required")

	// ErrTokenIsInvalid is returned when a token fails signature, structure,
	// or expiry verification.
	ErrTokenIsInvalid = errors.New("token is invalid")
)

// Claims is the JWT payload for a credential token. The subject holds the
// principal's identity; the token id (jti) supports revocation on logout.
type Claims struct {
	jwt.RegisteredClaims
}

// Service signs and verifies credential tokens with a server-held secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. The secret must be non-empty; ttl
// bounds the lifetime of issued tokens.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token whose subject is the given identity.
func (s *Service) Issue(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a signed token, returning its claims.
// Any failure, including an unexpected signing method or an expired token,
// is reported as ErrTokenIsInvalid with the underlying cause joined.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenIsInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrTokenIsInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenIsInvalid
	}

	return claims, nil
}

// TTL returns the lifetime applied to issued tokens.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

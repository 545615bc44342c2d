package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail verification
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies HS256 tokens for one issuer and audience
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenIssuer creates an issuer. A zero ttl issues non-expiring tokens.
func NewTokenIssuer(key []byte, issuer, audience string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		key:      key,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue signs a token for subject and returns its expiry (zero if none)
func (t *TokenIssuer) Issue(subject string) (string, time.Time, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Issuer:   t.issuer,
		Subject:  subject,
		Audience: jwt.ClaimStrings{t.audience},
		IssuedAt: jwt.NewNumericDate(now),
	}

	var expiresAt time.Time
	if t.ttl > 0 {
		expiresAt = now.Add(t.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, issuer, audience and expiry, returning the subject
func (t *TokenIssuer) Verify(token string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithTimeFunc(t.now),
	}
	if t.ttl > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

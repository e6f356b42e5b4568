// Package token encodes and decodes the signed, time-bounded claim sets that
// back access and refresh credentials. Claims are self-contained: signature
// checking never touches a store, only identity re-resolution does.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL applies when a caller mints without an explicit lifetime.
const DefaultTTL = 15 * time.Minute

var ErrExpired = errors.New("token expired")
var ErrSignatureInvalid = errors.New("token signature invalid")
var ErrMalformed = errors.New("token malformed")

// Claims is the payload carried by every issued token. Subject is the
// username; Role is present on refresh tokens and omitted on access tokens.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies claim sets with a process-wide shared secret
// using HS256. The secret is injected at construction so it can be rotated
// by configuration and isolated per test.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a Codec. defaultTTL <= 0 falls back to DefaultTTL.
func NewCodec(secret string, defaultTTL time.Duration) *Codec {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: defaultTTL, now: time.Now}
}

// Mint signs claims with an expiry of now + ttl. ttl <= 0 uses the codec's
// default. A fresh jti is attached so otherwise-identical mints differ.
func (c *Codec) Mint(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := c.now().UTC()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	claims.ID = uuid.NewString()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies signature, algorithm, and expiry, and requires a subject.
// Failures map to ErrExpired, ErrSignatureInvalid, or ErrMalformed; the
// wrapped cause is for audit use only and is never shown to API callers.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %s", ErrExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %s", ErrSignatureInvalid, err)
		default:
			return nil, fmt.Errorf("%w: %s", ErrMalformed, err)
		}
	}
	if !parsed.Valid {
		return nil, ErrSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformed)
	}
	return claims, nil
}

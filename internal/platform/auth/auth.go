// Package auth mints and verifies HS256 bearer tokens
//
// The subject claim carries the numeric user id and a private role claim
// carries the caller's role. Parse has the httpkit.TokenFunc shape.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret is returned when a signer is built without key material
var ErrNoSecret = errors.New("auth: signing secret is empty")

// Claims are the token claims we issue and accept
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Signer issues and verifies tokens with one shared secret
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewHS256 builds a Signer
// ttl <= 0 issues tokens without expiry
func NewHS256(secret []byte, issuer string, ttl time.Duration) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Signer{secret: secret, issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// Mint signs a token for userID with role
func (s *Signer) Mint(userID int64, role string) (string, error) {
	now := s.now()
	rc := jwt.RegisteredClaims{
		Subject:  strconv.FormatInt(userID, 10),
		Issuer:   s.issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		rc.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: rc, Role: role}).SignedString(s.secret)
}

// Parse verifies token and returns its subject and role
func (s *Signer) Parse(token string) (string, string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return "", "", err
	}
	if !t.Valid || claims.Subject == "" {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, claims.Role, nil
}

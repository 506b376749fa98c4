package httpkit

import (
	"net/http"
	"strings"

	perrs "channelhub/internal/platform/errors"
)

// TokenFunc turns a raw bearer token into the caller's user id and role
type TokenFunc func(token string) (userID string, role string, err error)

// Port reads the Authorization header for middleware.AuthPort
type Port struct {
	parse TokenFunc
}

// NewPortFunc wraps fn as a Port
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse returns the identity behind "Authorization: Bearer <token>".
// Every failure is Unauthorized and the parser's reason is not exposed.
func (p *Port) Parse(r *http.Request) (string, string, error) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", "", perrs.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, role, err := p.parse(parts[1])
	if err != nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, role, nil
}

package httpkit

import (
	"net/http"
	"strconv"

	"channelhub/internal/core/access"
	perrs "channelhub/internal/platform/errors"
	pnet "channelhub/internal/platform/net"
)

// User returns the authenticated user id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// Actor builds the acting user for r
// requests without an authenticated subject act as the guest
func Actor(r *http.Request) access.ActingUser {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return access.Guest()
	}
	id, err := strconv.ParseInt(uid, 10, 64)
	if err != nil || id < 0 {
		return access.Guest()
	}
	return access.ActingUser{ID: id, Role: access.ParseRole(pnet.Role(r.Context()))}
}

// MustActor returns the acting user or an unauthorized error when the request is anonymous
func MustActor(r *http.Request) (access.ActingUser, error) {
	if _, err := User(r); err != nil {
		return access.ActingUser{}, err
	}
	u := Actor(r)
	if u.ID == 0 {
		return access.ActingUser{}, perrs.Unauthorizedf("token subject is not a user id")
	}
	return u, nil
}

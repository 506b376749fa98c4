// Package access decides what a caller may see and which content they may distribute
package access

import "strings"

// Role is the caller's role as supplied by the identity provider
type Role string

const (
	// RoleOwner is the platform owner
	RoleOwner Role = "owner"
	// RoleAdmin is a platform administrator
	RoleAdmin Role = "admin"
	// RoleMember is a regular registered member
	RoleMember Role = "member"
	// RoleCreator uploads and distributes their own content
	RoleCreator Role = "creator"
	// RoleViewer may only browse
	RoleViewer Role = "viewer"
	// RoleGuest is the fallback for anonymous or unknown callers
	RoleGuest Role = "guest"
)

// ParseRole maps a role string onto a known Role, unknown values become RoleGuest
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleOwner, RoleAdmin, RoleMember, RoleCreator, RoleViewer:
		return r
	default:
		return RoleGuest
	}
}

// ActingUser is the explicit caller identity passed into every operation
type ActingUser struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

// Guest returns the anonymous caller
func Guest() ActingUser { return ActingUser{Role: RoleGuest} }

// Privileged reports whether the caller may act on any content item
func (u ActingUser) Privileged() bool {
	return u.Role == RoleOwner || u.Role == RoleAdmin
}

// Owns reports whether the caller is the owner of a record owned by ownerID
// anonymous callers own nothing
func (u ActingUser) Owns(ownerID int64) bool {
	return u.ID != 0 && u.ID == ownerID
}

// CanDistribute reports whether the caller may distribute content owned by ownerID
func (u ActingUser) CanDistribute(ownerID int64) bool {
	return u.Privileged() || u.Owns(ownerID)
}

// Scope is the visibility filter a search runs under
// All callers see everything, the rest see their own items plus approved public ones
type Scope struct {
	All     bool
	OwnerID int64
}

// SearchScope derives the visibility scope for u
func SearchScope(u ActingUser) Scope {
	if u.Privileged() {
		return Scope{All: true}
	}
	return Scope{OwnerID: u.ID}
}

// Visible reports whether a record with the given owner, status and visibility passes the scope
func (s Scope) Visible(ownerID int64, status, visibility string) bool {
	if s.All {
		return true
	}
	if s.OwnerID != 0 && s.OwnerID == ownerID {
		return true
	}
	return status == StatusApproved && visibility == VisibilityPublic
}

// content states the scope understands
const (
	StatusApproved   = "approved"
	VisibilityPublic = "public"
)

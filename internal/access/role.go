// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package access

import "fmt"

// # Blog Roles

// Role is the per-blog authorization level attached to an access grant, or
// computed as the effective role of a caller with respect to a single blog.
//
// It is a closed set. Values only enter the system through [ParseRole] at the
// storage boundary or through the package constants; an unrecognized role in
// a stored row is treated as data corruption, never as a grant.
type Role string

const (
	// Can write and edit content on the blog
	RoleEditor Role = "editor"

	// Can additionally manage taxonomies and delete content
	RoleAdmin Role = "admin"

	// Full control, including settings, collaborators, and deletion
	RoleOwner Role = "owner"

	// Platform operator, effective on every blog
	RoleMaster Role = "master"
)

// # Role Hierarchy

// Rank maps a role to its position in the total order.
//
// Unknown roles rank 0 and therefore never satisfy any requirement (fail closed).
func (r Role) Rank() int {
	switch r {
	case RoleEditor:
		return 1
	case RoleAdmin:
		return 2
	case RoleOwner:
		return 3
	case RoleMaster:
		return 4
	default:
		return 0
	}
}

// Sufficient reports whether the role meets or exceeds the required role.
//
// Both sides must be members of the hierarchy: an unknown effective role is
// never sufficient, and an unknown required role is never satisfied.
func (r Role) Sufficient(required Role) bool {
	requiredRank := required.Rank()
	if requiredRank == 0 {
		return false
	}
	return r.Rank() >= requiredRank
}

// Grantable reports whether the role may be assigned through the grant
// operation. Ownership is transferred by changing the blog's owner, and
// master is never stored per-blog, so only editor and admin qualify.
func (r Role) Grantable() bool {
	return r == RoleEditor || r == RoleAdmin
}

// ParseRole validates a stored role string against the closed set.
//
// It is the single deserialization point for roles read from the store;
// anything unrecognized is rejected so a corrupted row can never widen access.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if role.Rank() == 0 {
		return "", fmt.Errorf("access: unrecognized role %q", s)
	}
	return role, nil
}

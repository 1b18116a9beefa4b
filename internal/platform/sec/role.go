// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package sec

// # Account Roles

// AccountRole is the platform-wide role stored on a user account.
//
// It is deliberately distinct from the per-blog effective role computed by the
// access package: this field is mostly informational (legacy of the original
// single-role model) and never substitutes for a blog-scoped access check.
type AccountRole string

const (
	// Platform operator, bypasses all per-blog checks
	RoleMaster AccountRole = "master"

	// Owns at least one blog
	RoleOwner AccountRole = "owner"

	// Can administer blogs they are granted on
	RoleAdmin AccountRole = "admin"

	// Can write and edit content on granted blogs
	RoleEditor AccountRole = "editor"

	// Default role for freshly provisioned accounts
	RoleUser AccountRole = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r AccountRole) AtLeast(target AccountRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r AccountRole) level() int {

	// Linear scale (10-50) allows for future intermediate roles.
	// Unknown roles map to 0 and therefore never satisfy any requirement.
	switch r {
	case RoleMaster:
		return 50
	case RoleOwner:
		return 40
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

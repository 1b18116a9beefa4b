// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

/*
Package access implements blog-scoped access control and role resolution.

Every read or write against blog-scoped resources (articles, categories, tags,
authors, settings) flows through this package's decision procedure before the
operation runs. It combines three sources of authority:

  - Super-admin allow-list: platform operators, granted unconditionally.
  - Ownership: the blog's owner column, dominant over explicit grants.
  - Grants: the persisted (user, blog) → role relation.

# Architecture

The package is self-contained: it defines its own minimal persistence contract
([Repository]) over the shared user and blog tables rather than importing the
domain packages, so the decision procedure has no dependency on the surfaces
it gates.
*/
package access

import (
	"strings"
	"time"

	"github.com/cbrazil/redator/internal/platform/sec"
)

// # Identity

// Principal is the authenticated caller attached to an inbound request.
//
// It is constructed fresh on every request from verified token claims and is
// never persisted itself; it is a view over the stored account row. The email
// is trusted as verified-authentic — the authentication middleware rejects
// requests whose token signature does not check out, and this package is
// never invoked for anonymous requests.
type Principal struct {
	// SubjectID is the opaque, stable subject from the token ('sub' claim).
	SubjectID string

	// Email is the caller's verified address. It doubles as the super-admin
	// discriminant and the natural key for find-or-create.
	Email string

	// Name is an optional display attribute.
	Name string
}

// PrincipalFromClaims builds a [Principal] from verified JWT claims.
func PrincipalFromClaims(claims *sec.AuthClaims) Principal {
	return Principal{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
	}
}

// Account is the minimal view of a stored user row needed for access decisions.
type Account struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// BlogRef is the minimal view of a stored blog row: identity plus ownership.
type BlogRef struct {
	ID      int64
	OwnerID *int64
}

// # Grants

// Grant is the persisted assignment of a role to a user on a blog.
//
// At most one grant exists per (UserID, BlogID) pair; the storage layer
// enforces this with a composite primary key.
type Grant struct {
	UserID int64 `json:"user_id"`
	BlogID int64 `json:"blog_id"`
	Role   Role  `json:"role"`

	// Denormalized for collaborator list views.
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Decisions

// Reason classifies why a decision denied access.
type Reason string

const (
	// ReasonNotFound: the referenced blog does not exist.
	ReasonNotFound Reason = "not_found"

	// ReasonForbidden: the caller holds no relation (ownership or grant) to the blog.
	ReasonForbidden Reason = "forbidden"

	// ReasonInsufficientRole: the caller holds a relation below the required role.
	ReasonInsufficientRole Reason = "insufficient_role"
)

// Decision is the structured outcome of the access decision procedure.
//
// Denials are expected, recoverable outcomes carried in the value; storage
// faults are returned as errors alongside a zero Decision so callers can
// never mistake an outage for a denial.
type Decision struct {
	Granted       bool   `json:"granted"`
	EffectiveRole Role   `json:"effective_role,omitempty"`
	Reason        Reason `json:"reason,omitempty"`
}

// emailLocalPart extracts the part before '@' for use as a display-name fallback.
func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// # Field Identifiers

const (
	FieldUserID = "user_id"
	FieldBlogID = "blog_id"
	FieldRole   = "role"
)

// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package access

import "context"

// # Persistence Contract

// Repository defines the data access contract for the access decision
// procedure. All uniqueness guarantees (unique account email, one grant per
// (user, blog) pair) are enforced at the storage layer.
type Repository interface {

	/*
		FindAccountByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string (exact, case-sensitive match)

		Returns:
		  - *Account: Hydrated minimal account view
		  - error: dberr.ErrNotFound if absent, or retrieval failures
	*/
	FindAccountByEmail(context context.Context, email string) (*Account, error)

	/*
		CreateAccount inserts an account for a previously-unseen email.

		The insert must be atomic with respect to concurrent first logins for
		the same email: on a unique-constraint conflict the existing row is
		returned instead. Never a plain check-then-insert.

		Parameters:
		  - context: context.Context
		  - email: string
		  - name: string

		Returns:
		  - *Account: The inserted or pre-existing row
		  - error: Persistence failures
	*/
	CreateAccount(context context.Context, email, name string) (*Account, error)

	/*
		FindBlogOwner returns the blog's identity and owner column.

		Parameters:
		  - context: context.Context
		  - blogID: int64

		Returns:
		  - *BlogRef: Blog identity plus nullable owner
		  - error: dberr.ErrNotFound if the blog does not exist
	*/
	FindBlogOwner(context context.Context, blogID int64) (*BlogRef, error)

	/*
		FindGrant returns the grant for a (user, blog) pair.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - blogID: int64

		Returns:
		  - *Grant: The single grant row, role already validated
		  - error: dberr.ErrNotFound if no grant exists
	*/
	FindGrant(context context.Context, userID, blogID int64) (*Grant, error)

	/*
		UpsertGrant inserts or overwrites the grant for a (user, blog) pair.

		The upsert must be atomic on the composite key; concurrent grants for
		the same pair serialize at the store (last writer wins).

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - blogID: int64
		  - role: Role

		Returns:
		  - *Grant: The resulting row
		  - error: Persistence failures
	*/
	UpsertGrant(context context.Context, userID, blogID int64, role Role) (*Grant, error)

	/*
		DeleteGrant removes the grant for a (user, blog) pair.

		Absence is not an error (idempotent delete).

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - blogID: int64

		Returns:
		  - error: Persistence failures
	*/
	DeleteGrant(context context.Context, userID, blogID int64) error

	/*
		ListGrants returns all grants on a blog with denormalized account info.

		Parameters:
		  - context: context.Context
		  - blogID: int64

		Returns:
		  - []*Grant: Collaborator list ordered by creation time
		  - error: Retrieval failures
	*/
	ListGrants(context context.Context, blogID int64) ([]*Grant, error)
}

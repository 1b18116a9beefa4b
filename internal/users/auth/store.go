// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package auth

import (
	"context"
	"time"

	"github.com/cbrazil/redator/pkg/pagination"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account, assigning its ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error

	/*
		List returns a page of accounts ordered by creation, with the total count.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*User: Page of accounts
		  - int: Total account count
		  - error: Database retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]*User, int, error)
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token
// sessions. Sessions are keyed by the token hash; the plaintext token never
// reaches storage.
type SessionRepository interface {

	/*
		Save stores a refresh-token session for a user with a bounded lifetime.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - userID: int64
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Save(context context.Context, tokenHash string, userID int64, ttl time.Duration) error

	/*
		Find resolves a token hash into the owning user ID.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - int64: Owning user ID
		  - error: apperr.NotFound when absent or expired, or retrieval failures
	*/
	Find(context context.Context, tokenHash string) (int64, error)

	/*
		Delete removes a session. Absence is not an error.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, tokenHash string) error

	/*
		DeleteAllForUser revokes every session belonging to one user.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Deletion failures
	*/
	DeleteAllForUser(context context.Context, userID int64) error
}

// # Reset Token Data Access

// ResetTokenRepository defines the data access contract for one-shot
// password-reset tokens. Tokens are keyed by their hash, same as sessions.
type ResetTokenRepository interface {

	/*
		Set stores a reset token for a user with a bounded lifetime.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - userID: int64
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, tokenHash string, userID int64, ttl time.Duration) error

	/*
		Get resolves a token hash into the owning user ID.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - int64: Owning user ID
		  - error: apperr.NotFound when absent or expired, or retrieval failures
	*/
	Get(context context.Context, tokenHash string) (int64, error)

	/*
		Delete consumes the token. Absence is not an error.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, tokenHash string) error
}

// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

/*
Package auth implements the user identity and session management layer.

It defines the core account entity and the logic for registration, login,
and refresh-token session lifecycle.

# Architecture

This layer is the "Truth" of the platform identity. Accounts created here are
the same rows the blog access layer resolves principals against: a user may
exist with an empty password hash when they were auto-provisioned by a
federated login before ever registering directly.
*/
package auth

import (
	"time"

	"github.com/cbrazil/redator/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Redator platform.
type User struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.AccountRole `json:"role"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldName            = "name"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldToken           = "token"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)

// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh-token session remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// ResetTokenTTL is the duration a password-reset token remains valid.
	// Short-lived (1h) because a reset token is a full credential bypass.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random reset token.
	ResetTokenLength = 32
)

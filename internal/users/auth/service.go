// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/cbrazil/redator/internal/platform/apperr"
	"github.com/cbrazil/redator/internal/platform/sec"
	"github.com/cbrazil/redator/pkg/pagination"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - name: The display name of the account.
	//   - role: The platform role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID int64, email, name, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository       UserRepository
	sessionRepository    SessionRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessionRepo SessionRepository, resetTokenRepo ResetTokenRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository:       userRepo,
		sessionRepository:    sessionRepo,
		resetTokenRepository: resetTokenRepo,
		tokenProvider:        tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member with a hashed password. An account that was
auto-provisioned earlier (empty password hash) can claim its identity here by
setting a password; a fully registered email is a conflict.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created or claimed entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	existing, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		// Auto-provisioned rows carry no credentials yet. Claiming one sets
		// the password without touching the stored name or role.
		if existing.PasswordHash != "" {
			return nil, apperr.Conflict("Email is already registered")
		}
		if err := service.userRepository.UpdatePassword(context, existing.ID, hashedPassword); err != nil {
			return nil, fmt.Errorf("auth_service_claim_failed: %w", err)
		}
		return existing, nil
	}

	user := &User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and initializes a new session with rotated security tokens.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Accounts auto-provisioned by the access layer have no credentials and
	// cannot log in until registered.
	if user.PasswordHash == "" {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.establishSession(context, user)
}

/*
Logout permanently revokes the user's active session.

Description: Ensures that a tracked refresh token can never be used again.
Logging out an unknown or already-revoked token succeeds (idempotent).

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, deletes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.sessionRepository.Find(context, tokenHash)

	// If (err != nil) the token is either expired, already revoked, or completely invalid.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: delete the old session to prevent replay attacks
	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.establishSession(context, user)
}

// establishSession mints the access/refresh token pair and persists the
// refresh session.
func (service *Service) establishSession(context context.Context, user *User) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, user.Name, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	if err := service.sessionRepository.Save(context, sec.HashToken(refreshToken), user.ID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Credential Management

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password before applying the new hash. The
current session stays valid; refresh tokens age out on their own TTL.

Parameters:
  - context: context.Context
  - userID: int64
  - currentPassword: string
  - newPassword: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}

// # Password Recovery

/*
RequestPasswordReset begins the forgot-password flow for an email address.

Description: Mints a one-shot reset token bound to the account and stores its
hash with a short TTL. An unknown or unclaimed email succeeds silently with an
empty token so the endpoint never confirms whether an address is registered.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Plaintext reset token, empty when the email resolves to nothing
  - err: Token generation or storage failures
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	user, err := service.userRepository.FindByEmail(context, email)

	// Unknown email: report success without a token to prevent enumeration.
	if err != nil {
		return "", nil
	}

	// Auto-provisioned accounts have no password to reset.
	if user.PasswordHash == "" {
		return "", nil
	}

	resetToken, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, sec.HashToken(resetToken), user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_reset_token_save_failed: %w", err)
	}

	return resetToken, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Resolves the one-shot token, replaces the account's password
hash, revokes every outstanding session for the account, and consumes the
token so it can never resolve again.

Parameters:
  - context: context.Context
  - resetToken: string
  - newPassword: string

Returns:
  - err: Unauthorized (invalid/expired token) or storage failures
*/
func (service *Service) ResetPassword(context context.Context, resetToken, newPassword string) error {
	tokenHash := sec.HashToken(resetToken)

	userID, err := service.resetTokenRepository.Get(context, tokenHash)
	if err != nil {
		return apperr.Unauthorized("Reset token is invalid or expired")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_update_failed: %w", err)
	}

	// A reset implies the old credentials may be compromised: force every
	// device to authenticate again.
	if err := service.sessionRepository.DeleteAllForUser(context, userID); err != nil {
		return fmt.Errorf("auth_service_reset_revoke_failed: %w", err)
	}

	if err := service.resetTokenRepository.Delete(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_reset_consume_failed: %w", err)
	}

	return nil
}

// # Directory

/*
ListUsers returns one page of platform accounts.

Description: Backs the collaborator picker: blog owners look up the user ID
to grant against. Password hashes never leave the entity's JSON boundary.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*User: Page of accounts
  - int: Total account count
  - err: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, params pagination.Params) ([]*User, int, error) {
	return service.userRepository.List(context, params)
}

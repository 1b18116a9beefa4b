// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrazil/redator/internal/platform/apperr"
	"github.com/cbrazil/redator/internal/platform/sec"
	"github.com/cbrazil/redator/pkg/pagination"
)

// # Test Fixtures

type fakeUserRepository struct {
	byEmail map[string]*User
	byID    map[int64]*User
	nextID  int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail: make(map[string]*User),
		byID:    make(map[int64]*User),
		nextID:  1,
	}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int64) (*User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User not found with this email")
	}
	return user, nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return apperr.Conflict("duplicate email")
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID int64, newHash string) error {
	user, ok := f.byID[userID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	user.PasswordHash = newHash
	return nil
}

func (f *fakeUserRepository) List(_ context.Context, _ pagination.Params) ([]*User, int, error) {
	var users []*User
	for _, user := range f.byID {
		users = append(users, user)
	}
	return users, len(users), nil
}

type fakeSessionRepository struct {
	sessions map[string]int64
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]int64)}
}

func (f *fakeSessionRepository) Save(_ context.Context, tokenHash string, userID int64, _ time.Duration) error {
	f.sessions[tokenHash] = userID
	return nil
}

func (f *fakeSessionRepository) Find(_ context.Context, tokenHash string) (int64, error) {
	userID, ok := f.sessions[tokenHash]
	if !ok {
		return 0, apperr.NotFound("Session is invalid or expired")
	}
	return userID, nil
}

func (f *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

func (f *fakeSessionRepository) DeleteAllForUser(_ context.Context, userID int64) error {
	for tokenHash, owner := range f.sessions {
		if owner == userID {
			delete(f.sessions, tokenHash)
		}
	}
	return nil
}

type fakeResetTokenRepository struct {
	tokens map[string]int64
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{tokens: make(map[string]int64)}
}

func (f *fakeResetTokenRepository) Set(_ context.Context, tokenHash string, userID int64, _ time.Duration) error {
	f.tokens[tokenHash] = userID
	return nil
}

func (f *fakeResetTokenRepository) Get(_ context.Context, tokenHash string) (int64, error) {
	userID, ok := f.tokens[tokenHash]
	if !ok {
		return 0, apperr.NotFound("Reset token is invalid or expired")
	}
	return userID, nil
}

func (f *fakeResetTokenRepository) Delete(_ context.Context, tokenHash string) error {
	delete(f.tokens, tokenHash)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID int64, email, _, _ string, _ time.Duration) (string, error) {
	return fmt.Sprintf("jwt:%d:%s", userID, email), nil
}

func newTestService(users *fakeUserRepository, sessions *fakeSessionRepository) *Service {
	return NewService(users, sessions, newFakeResetTokenRepository(), fakeTokenProvider{})
}

// # Registration Flow

func TestRegisterCreatesUser(t *testing.T) {
	users := newFakeUserRepository()
	service := newTestService(users, newFakeSessionRepository())

	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "maria@example.com",
		Name:     "Maria Silva",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct-horse", user.PasswordHash, "password must be stored hashed")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserRepository()
	service := newTestService(users, newFakeSessionRepository())

	input := RegisterInput{Email: "maria@example.com", Name: "Maria", Password: "correct-horse"}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestRegisterClaimsAutoProvisionedAccount(t *testing.T) {
	users := newFakeUserRepository()
	// Simulate a row the access layer provisioned on first touch: it has an
	// identity but no credentials.
	provisioned := &User{Email: "joao@example.com", Name: "João", Role: sec.RoleUser}
	require.NoError(t, users.Create(context.Background(), provisioned))

	service := newTestService(users, newFakeSessionRepository())

	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "joao@example.com",
		Name:     "J. Souza",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, provisioned.ID, user.ID, "claiming must not create a second row")
	assert.Equal(t, "João", user.Name, "stored name is kept over the registration input")
	assert.NotEmpty(t, user.PasswordHash)
}

// # Authentication Flow

func registerUser(t *testing.T, service *Service, email, password string) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Email:    email,
		Name:     "Test User",
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := newTestService(users, sessions)
	user := registerUser(t, service, "maria@example.com", "correct-horse")

	session, err := service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "correct-horse"})

	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Len(t, sessions.sessions, 1, "refresh session must be persisted")
	assert.NotContains(t, sessions.sessions, session.RefreshToken, "only the hash may be stored")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newFakeUserRepository()
	service := newTestService(users, newFakeSessionRepository())
	registerUser(t, service, "maria@example.com", "correct-horse")

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"wrong password", LoginInput{Email: "maria@example.com", Password: "wrong"}},
		{"unknown email", LoginInput{Email: "nobody@example.com", Password: "correct-horse"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
		})
	}
}

func TestLoginRejectsAccountWithoutCredentials(t *testing.T) {
	users := newFakeUserRepository()
	provisioned := &User{Email: "joao@example.com", Name: "João", Role: sec.RoleUser}
	require.NoError(t, users.Create(context.Background(), provisioned))
	service := newTestService(users, newFakeSessionRepository())

	_, err := service.Login(context.Background(), LoginInput{Email: "joao@example.com", Password: ""})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

// # Session Management

func TestRefreshRotatesSession(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := newTestService(users, sessions)
	registerUser(t, service, "maria@example.com", "correct-horse")

	login, err := service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := service.RefreshSession(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The consumed token must be dead: replaying it is unauthorized.
	_, err = service.RefreshSession(context.Background(), login.RefreshToken)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := newTestService(users, sessions)
	registerUser(t, service, "maria@example.com", "correct-horse")

	login, err := service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), login.RefreshToken))
	require.NoError(t, service.Logout(context.Background(), login.RefreshToken))
	assert.Empty(t, sessions.sessions)

	_, err = service.RefreshSession(context.Background(), login.RefreshToken)
	assert.Error(t, err)
}

// # Credential Management

func TestChangePassword(t *testing.T) {
	users := newFakeUserRepository()
	service := newTestService(users, newFakeSessionRepository())
	user := registerUser(t, service, "maria@example.com", "correct-horse")

	err := service.ChangePassword(context.Background(), user.ID, "wrong", "new-password-123")
	require.Error(t, err)

	err = service.ChangePassword(context.Background(), user.ID, "correct-horse", "new-password-123")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "correct-horse"})
	assert.Error(t, err, "old password must stop working")

	_, err = service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "new-password-123"})
	assert.NoError(t, err)
}

// # Password Recovery

func TestPasswordResetFlow(t *testing.T) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := NewService(users, sessions, newFakeResetTokenRepository(), fakeTokenProvider{})
	registerUser(t, service, "maria@example.com", "old-password-123")

	login, err := service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "old-password-123"})
	require.NoError(t, err)

	token, err := service.RequestPasswordReset(context.Background(), "maria@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	err = service.ResetPassword(context.Background(), token, "new-password-456")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "old-password-123"})
	assert.Error(t, err, "old password must stop working")

	_, err = service.Login(context.Background(), LoginInput{Email: "maria@example.com", Password: "new-password-456"})
	assert.NoError(t, err)

	_, err = service.RefreshSession(context.Background(), login.RefreshToken)
	assert.Error(t, err, "sessions established before the reset are revoked")
}

func TestResetTokenIsSingleUse(t *testing.T) {
	service := newTestService(newFakeUserRepository(), newFakeSessionRepository())
	registerUser(t, service, "maria@example.com", "old-password-123")

	token, err := service.RequestPasswordReset(context.Background(), "maria@example.com")
	require.NoError(t, err)

	require.NoError(t, service.ResetPassword(context.Background(), token, "new-password-456"))

	err = service.ResetPassword(context.Background(), token, "another-password-789")
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestRequestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	service := newTestService(newFakeUserRepository(), newFakeSessionRepository())

	token, err := service.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRequestPasswordResetSkipsUnclaimedAccount(t *testing.T) {
	users := newFakeUserRepository()
	service := newTestService(users, newFakeSessionRepository())

	// Auto-provisioned rows carry no credentials: nothing to reset.
	provisioned := &User{Email: "ghost@example.com", Name: "ghost"}
	require.NoError(t, users.Create(context.Background(), provisioned))

	token, err := service.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestResetPasswordRejectsUnknownToken(t *testing.T) {
	service := newTestService(newFakeUserRepository(), newFakeSessionRepository())

	err := service.ResetPassword(context.Background(), "no-such-token", "new-password-456")
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

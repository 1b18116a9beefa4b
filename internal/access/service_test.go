// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package access

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrazil/redator/internal/platform/apperr"
	"github.com/cbrazil/redator/internal/platform/dberr"
)

// # Test Fixtures

type grantKey struct {
	userID int64
	blogID int64
}

// fakeRepository is an in-memory [Repository] used by the service tests.
// Forced errors, when set, take precedence over the stored state.
type fakeRepository struct {
	accounts map[string]*Account // keyed by email
	blogs    map[int64]*BlogRef
	grants   map[grantKey]*Grant

	nextAccountID int64
	createCalls   int
	findGrantErr  error
	findOwnerErr  error
	findAcctErr   error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		accounts:      make(map[string]*Account),
		blogs:         make(map[int64]*BlogRef),
		grants:        make(map[grantKey]*Grant),
		nextAccountID: 1,
	}
}

func (f *fakeRepository) FindAccountByEmail(_ context.Context, email string) (*Account, error) {
	if f.findAcctErr != nil {
		return nil, f.findAcctErr
	}
	account, ok := f.accounts[email]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return account, nil
}

func (f *fakeRepository) CreateAccount(_ context.Context, email, name string) (*Account, error) {
	f.createCalls++
	// Unique-email backstop: a concurrent insert wins and the existing row
	// is returned, mirroring the ON CONFLICT DO NOTHING path.
	if existing, ok := f.accounts[email]; ok {
		return existing, nil
	}
	account := &Account{ID: f.nextAccountID, Email: email, Name: name}
	f.nextAccountID++
	f.accounts[email] = account
	return account, nil
}

func (f *fakeRepository) FindBlogOwner(_ context.Context, blogID int64) (*BlogRef, error) {
	if f.findOwnerErr != nil {
		return nil, f.findOwnerErr
	}
	blog, ok := f.blogs[blogID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return blog, nil
}

func (f *fakeRepository) FindGrant(_ context.Context, userID, blogID int64) (*Grant, error) {
	if f.findGrantErr != nil {
		return nil, f.findGrantErr
	}
	grant, ok := f.grants[grantKey{userID, blogID}]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return grant, nil
}

func (f *fakeRepository) UpsertGrant(_ context.Context, userID, blogID int64, role Role) (*Grant, error) {
	key := grantKey{userID, blogID}
	now := time.Now()
	if existing, ok := f.grants[key]; ok {
		existing.Role = role
		existing.UpdatedAt = now
		return existing, nil
	}
	grant := &Grant{UserID: userID, BlogID: blogID, Role: role, CreatedAt: now, UpdatedAt: now}
	f.grants[key] = grant
	return grant, nil
}

func (f *fakeRepository) DeleteGrant(_ context.Context, userID, blogID int64) error {
	delete(f.grants, grantKey{userID, blogID})
	return nil
}

func (f *fakeRepository) ListGrants(_ context.Context, blogID int64) ([]*Grant, error) {
	var grants []*Grant
	for key, grant := range f.grants {
		if key.blogID == blogID {
			grants = append(grants, grant)
		}
	}
	return grants, nil
}

func newTestService(repo Repository, superAdmins ...string) *Service {
	return NewService(repo, superAdmins, slog.New(slog.DiscardHandler))
}

func seedAccount(repo *fakeRepository, email string) *Account {
	account, _ := repo.CreateAccount(context.Background(), email, emailLocalPart(email))
	repo.createCalls = 0
	return account
}

func seedBlog(repo *fakeRepository, blogID int64, owner *Account) {
	ref := &BlogRef{ID: blogID}
	if owner != nil {
		ref.OwnerID = &owner.ID
	}
	repo.blogs[blogID] = ref
}

// # Super-Admin Determination

func TestIsSuperAdmin(t *testing.T) {
	service := newTestService(newFakeRepository(), "admin@cbrazil.com", "ops@cbrazil.com")

	assert.True(t, service.IsSuperAdmin("admin@cbrazil.com"))
	assert.True(t, service.IsSuperAdmin("ops@cbrazil.com"))
	assert.False(t, service.IsSuperAdmin("user@cbrazil.com"))
	assert.False(t, service.IsSuperAdmin("Admin@cbrazil.com"), "membership is case-sensitive")
	assert.False(t, service.IsSuperAdmin(""))
}

func TestCheckSuperAdminBypassesStore(t *testing.T) {
	repo := newFakeRepository()
	repo.findAcctErr = errors.New("database is down")
	repo.findOwnerErr = errors.New("database is down")
	service := newTestService(repo, "admin@cbrazil.com")

	// Even with the store unreachable and the blog nonexistent, the
	// allow-listed operator is granted at master.
	decision, err := service.Check(context.Background(), Principal{Email: "admin@cbrazil.com"}, 9999, RoleOwner)

	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, RoleMaster, decision.EffectiveRole)
	assert.Zero(t, repo.createCalls, "bypass must not provision an account")
}

// # Principal Resolution

func TestResolveAccountCreatesOnFirstLogin(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	account, err := service.ResolveAccount(context.Background(), Principal{Email: "maria@example.com", Name: "Maria Silva"})

	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", account.Email)
	assert.Equal(t, "Maria Silva", account.Name)
	assert.Equal(t, 1, repo.createCalls)
}

func TestResolveAccountNameFallsBackToLocalPart(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	account, err := service.ResolveAccount(context.Background(), Principal{Email: "joao.souza@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "joao.souza", account.Name)
}

func TestResolveAccountIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	first, err := service.ResolveAccount(context.Background(), Principal{Email: "maria@example.com", Name: "Maria Silva"})
	require.NoError(t, err)

	// Repeat logins return the stored row untouched, even when the token
	// now carries a different display name.
	second, err := service.ResolveAccount(context.Background(), Principal{Email: "maria@example.com", Name: "M. Silva"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Maria Silva", second.Name)
	assert.Equal(t, 1, repo.createCalls)
}

func TestResolveAccountPropagatesStorageFault(t *testing.T) {
	repo := newFakeRepository()
	repo.findAcctErr = errors.New("connection refused")
	service := newTestService(repo)

	_, err := service.ResolveAccount(context.Background(), Principal{Email: "maria@example.com"})
	assert.Error(t, err)
}

// # Access Decision Procedure

func TestCheckOwnerDominatesGrantRow(t *testing.T) {
	repo := newFakeRepository()
	owner := seedAccount(repo, "owner@example.com")
	seedBlog(repo, 1, owner)
	// A stale editor grant for the owner must not cap the effective role.
	repo.grants[grantKey{owner.ID, 1}] = &Grant{UserID: owner.ID, BlogID: 1, Role: RoleEditor}
	service := newTestService(repo)

	decision, err := service.Check(context.Background(), Principal{Email: "owner@example.com"}, 1, RoleOwner)

	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, RoleOwner, decision.EffectiveRole)
}

func TestCheckGrantRoles(t *testing.T) {
	tests := []struct {
		name          string
		granted       Role
		required      Role
		wantGranted   bool
		wantEffective Role
		wantReason    Reason
	}{
		{"admin acts as editor", RoleAdmin, RoleEditor, true, RoleAdmin, ""},
		{"admin acts as admin", RoleAdmin, RoleAdmin, true, RoleAdmin, ""},
		{"admin below owner", RoleAdmin, RoleOwner, false, RoleAdmin, ReasonInsufficientRole},
		{"editor acts as editor", RoleEditor, RoleEditor, true, RoleEditor, ""},
		{"editor below admin", RoleEditor, RoleAdmin, false, RoleEditor, ReasonInsufficientRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			owner := seedAccount(repo, "owner@example.com")
			collaborator := seedAccount(repo, "collab@example.com")
			seedBlog(repo, 1, owner)
			repo.grants[grantKey{collaborator.ID, 1}] = &Grant{UserID: collaborator.ID, BlogID: 1, Role: tt.granted}
			service := newTestService(repo)

			decision, err := service.Check(context.Background(), Principal{Email: "collab@example.com"}, 1, tt.required)

			require.NoError(t, err)
			assert.Equal(t, tt.wantGranted, decision.Granted)
			assert.Equal(t, tt.wantEffective, decision.EffectiveRole)
			assert.Equal(t, tt.wantReason, decision.Reason)
		})
	}
}

func TestCheckNoRelationIsForbidden(t *testing.T) {
	repo := newFakeRepository()
	owner := seedAccount(repo, "owner@example.com")
	seedBlog(repo, 1, owner)
	service := newTestService(repo)

	decision, err := service.Check(context.Background(), Principal{Email: "stranger@example.com"}, 1, RoleEditor)

	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, ReasonForbidden, decision.Reason)
}

func TestCheckMissingBlogIsNotFound(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	decision, err := service.Check(context.Background(), Principal{Email: "stranger@example.com"}, 42, RoleEditor)

	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, ReasonNotFound, decision.Reason)
}

func TestCheckFirstTouchProvisionsAccount(t *testing.T) {
	repo := newFakeRepository()
	owner := seedAccount(repo, "owner@example.com")
	seedBlog(repo, 1, owner)
	service := newTestService(repo)

	// The denial still resolves (and persists) the account: the side effect
	// is independent of the outcome.
	decision, err := service.Check(context.Background(), Principal{Email: "new@example.com"}, 1, RoleEditor)

	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, 1, repo.createCalls)
	assert.Contains(t, repo.accounts, "new@example.com")
}

func TestCheckStorageFaultIsAnError(t *testing.T) {
	repo := newFakeRepository()
	owner := seedAccount(repo, "owner@example.com")
	collaborator := seedAccount(repo, "collab@example.com")
	seedBlog(repo, 1, owner)
	repo.grants[grantKey{collaborator.ID, 1}] = &Grant{UserID: collaborator.ID, BlogID: 1, Role: RoleAdmin}
	repo.findGrantErr = errors.New("connection reset")
	service := newTestService(repo)

	decision, err := service.Check(context.Background(), Principal{Email: "collab@example.com"}, 1, RoleEditor)

	// A fault is never reported as a denial.
	require.Error(t, err)
	assert.False(t, decision.Granted)
	assert.Empty(t, decision.Reason)
}

func TestAuthorizeMapsDenialsToAppErrors(t *testing.T) {
	repo := newFakeRepository()
	owner := seedAccount(repo, "owner@example.com")
	collaborator := seedAccount(repo, "collab@example.com")
	seedBlog(repo, 1, owner)
	repo.grants[grantKey{collaborator.ID, 1}] = &Grant{UserID: collaborator.ID, BlogID: 1, Role: RoleEditor}
	service := newTestService(repo)

	tests := []struct {
		name       string
		principal  Principal
		blogID     int64
		required   Role
		wantStatus int
	}{
		{"missing blog", Principal{Email: "collab@example.com"}, 42, RoleEditor, http.StatusNotFound},
		{"no relation", Principal{Email: "stranger@example.com"}, 1, RoleEditor, http.StatusForbidden},
		{"insufficient role", Principal{Email: "collab@example.com"}, 1, RoleAdmin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Authorize(context.Background(), tt.principal, tt.blogID, tt.required)

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
		})
	}
}

func TestAuthorizeGranted(t *testing.T) {
	repo := newFakeRepository()
	owner := seedAccount(repo, "owner@example.com")
	seedBlog(repo, 1, owner)
	service := newTestService(repo)

	decision, err := service.Authorize(context.Background(), Principal{Email: "owner@example.com"}, 1, RoleAdmin)

	require.NoError(t, err)
	assert.True(t, decision.Granted)
	assert.Equal(t, RoleOwner, decision.EffectiveRole)
}

// # Grant Management

func TestGrantRevokeRoundTrip(t *testing.T) {
	repo := newFakeRepository()
	owner := seedAccount(repo, "owner@example.com")
	collaborator := seedAccount(repo, "collab@example.com")
	seedBlog(repo, 1, owner)
	service := newTestService(repo)

	grant, err := service.Grant(context.Background(), collaborator.ID, 1, RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, grant.Role)

	decision, err := service.Check(context.Background(), Principal{Email: "collab@example.com"}, 1, RoleEditor)
	require.NoError(t, err)
	assert.True(t, decision.Granted)

	require.NoError(t, service.Revoke(context.Background(), collaborator.ID, 1))

	decision, err = service.Check(context.Background(), Principal{Email: "collab@example.com"}, 1, RoleEditor)
	require.NoError(t, err)
	assert.False(t, decision.Granted)
	assert.Equal(t, ReasonForbidden, decision.Reason)
}

func TestGrantOverwritesExistingRole(t *testing.T) {
	repo := newFakeRepository()
	owner := seedAccount(repo, "owner@example.com")
	collaborator := seedAccount(repo, "collab@example.com")
	seedBlog(repo, 1, owner)
	service := newTestService(repo)

	_, err := service.Grant(context.Background(), collaborator.ID, 1, RoleEditor)
	require.NoError(t, err)

	grant, err := service.Grant(context.Background(), collaborator.ID, 1, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, grant.Role)

	// One row per (user, blog): promotion replaced the role in place.
	grants, err := service.ListGrants(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, RoleAdmin, grants[0].Role)
}

func TestGrantRejectsNonGrantableRoles(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	for _, role := range []Role{RoleOwner, RoleMaster, Role("bogus"), Role("")} {
		_, err := service.Grant(context.Background(), 1, 1, role)

		require.Error(t, err, "role %q must not be grantable", role)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	}
	assert.Empty(t, repo.grants)
}

func TestGrantRejectsInvalidIDs(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Grant(context.Background(), 0, 1, RoleEditor)
	assert.Error(t, err)

	_, err = service.Grant(context.Background(), 1, -5, RoleEditor)
	assert.Error(t, err)
}

func TestRevokeIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	assert.NoError(t, service.Revoke(context.Background(), 7, 1))
	assert.NoError(t, service.Revoke(context.Background(), 7, 1))
}

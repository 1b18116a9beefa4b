// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package access

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cbrazil/redator/internal/platform/apperr"
	"github.com/cbrazil/redator/internal/platform/dberr"
	"github.com/cbrazil/redator/internal/platform/validate"
)

// Service implements the access decision procedure and grant management.
//
// # Review Process
//
// This service is the single choke-point for blog-scoped authorization. Any
// change to the decision order or the fail-closed branches must be reviewed
// by the security team.
type Service struct {
	repo        Repository
	superAdmins map[string]struct{}
	logger      *slog.Logger
}

// NewService constructs the access [Service].
//
// The super-admin allow-list is injected at startup (built-in set merged with
// operator configuration); membership checks are case-sensitive.
func NewService(repo Repository, superAdmins []string, logger *slog.Logger) *Service {
	adminSet := make(map[string]struct{}, len(superAdmins))
	for _, email := range superAdmins {
		adminSet[email] = struct{}{}
	}

	return &Service{
		repo:        repo,
		superAdmins: adminSet,
		logger:      logger,
	}
}

// # Super-Admin Determination

// IsSuperAdmin reports whether the email is a platform-wide master.
//
// Evaluated independently of, and prior to, any database lookup so that
// platform operators retain access even when the user or grant tables are
// corrupted or not yet provisioned.
func (service *Service) IsSuperAdmin(email string) bool {
	_, ok := service.superAdmins[email]
	return ok
}

// # Principal Resolution

/*
ResolveAccount maps an authenticated principal to a stored account,
creating one the first time an email is seen.

Description: Lookup is by exact email. Existing rows are returned unchanged —
repeat logins never clobber a manually-assigned name or role. First logins
insert with the email local-part as the name fallback and the lowest
non-privileged platform role; the insert is race-safe (unique email
constraint is the backstop, see [Repository.CreateAccount]).

Parameters:
  - context: context.Context
  - principal: Principal

Returns:
  - *Account: Existing or freshly provisioned account
  - error: Storage failures
*/
func (service *Service) ResolveAccount(context context.Context, principal Principal) (*Account, error) {
	account, err := service.repo.FindAccountByEmail(context, principal.Email)
	if err == nil {
		return account, nil
	}
	if !dberr.IsNotFound(err) {
		return nil, fmt.Errorf("access_resolve_account_failed: %w", err)
	}

	name := principal.Name
	if name == "" {
		name = emailLocalPart(principal.Email)
	}

	account, err = service.repo.CreateAccount(context, principal.Email, name)
	if err != nil {
		return nil, fmt.Errorf("access_provision_account_failed: %w", err)
	}

	service.logger.InfoContext(context, "account_auto_provisioned",
		slog.Int64("user_id", account.ID),
		slog.String("email", account.Email),
	)

	return account, nil
}

// # Access Decision Procedure

/*
Check decides whether a principal may act on a blog at the required role.

Description: The single decision procedure every blog-scoped operation calls.
Evaluation order:

 1. Super-admin allow-list — terminal grant at master, BEFORE any store
    access. An allow-listed caller is granted even for a blog id that does
    not exist; the operator guarantee outweighs a 404 here.
 2. Resolve the account (find-or-create; the only side effect).
 3. Load the blog. Absent → denied with ReasonNotFound.
 4. Ownership: the blog's owner column dominates any grant row.
 5. Otherwise the grant row for (user, blog); absent → ReasonForbidden.
 6. Compare the effective role against the required role.

Parameters:
  - context: context.Context
  - principal: Principal
  - blogID: int64
  - required: Role

Returns:
  - Decision: Structured outcome (denials are values, not errors)
  - error: Storage faults only — callers must treat these as "could not
    determine access", never as a denial
*/
func (service *Service) Check(context context.Context, principal Principal, blogID int64, required Role) (Decision, error) {

	// ── 1. Super-Admin Bypass ─────────────────────────────────────────────
	if service.IsSuperAdmin(principal.Email) {
		return Decision{Granted: true, EffectiveRole: RoleMaster}, nil
	}

	// ── 2. Principal Resolution ───────────────────────────────────────────
	account, err := service.ResolveAccount(context, principal)
	if err != nil {
		return Decision{}, err
	}

	// ── 3. Blog Lookup ────────────────────────────────────────────────────
	blog, err := service.repo.FindBlogOwner(context, blogID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return Decision{Reason: ReasonNotFound}, nil
		}
		return Decision{}, fmt.Errorf("access_check_blog_lookup_failed: %w", err)
	}

	// ── 4. Effective Role ─────────────────────────────────────────────────
	var effective Role
	if blog.OwnerID != nil && *blog.OwnerID == account.ID {
		// Ownership dominates any grant row.
		effective = RoleOwner
	} else {
		grant, err := service.repo.FindGrant(context, account.ID, blogID)
		if err != nil {
			if dberr.IsNotFound(err) {
				return Decision{Reason: ReasonForbidden}, nil
			}
			return Decision{}, fmt.Errorf("access_check_grant_lookup_failed: %w", err)
		}
		effective = grant.Role
	}

	// ── 5. Sufficiency ────────────────────────────────────────────────────
	if !effective.Sufficient(required) {
		return Decision{EffectiveRole: effective, Reason: ReasonInsufficientRole}, nil
	}

	return Decision{Granted: true, EffectiveRole: effective}, nil
}

/*
Authorize runs [Service.Check] and converts a denial into the matching
[apperr.AppError], for handlers that only need go/no-go semantics.

Parameters:
  - context: context.Context
  - principal: Principal
  - blogID: int64
  - required: Role

Returns:
  - Decision: The underlying decision (also on denial, for logging)
  - error: apperr.NotFound / apperr.Forbidden on denial, raw storage faults otherwise
*/
func (service *Service) Authorize(context context.Context, principal Principal, blogID int64, required Role) (Decision, error) {
	decision, err := service.Check(context, principal, blogID, required)
	if err != nil {
		return decision, err
	}

	if !decision.Granted {
		switch decision.Reason {
		case ReasonNotFound:
			return decision, apperr.NotFound("Blog")
		case ReasonInsufficientRole:
			return decision, apperr.Forbidden("Your role on this blog does not allow this operation")
		default:
			return decision, apperr.Forbidden("You do not have access to this blog")
		}
	}

	return decision, nil
}

// # Grant Management

/*
Grant assigns a role to a user on a blog (upsert on the composite key).

Description: Only editor and admin are grantable — ownership is transferred
by changing the blog's owner, a separate and more privileged operation.

Parameters:
  - context: context.Context
  - userID: int64
  - blogID: int64
  - role: Role

Returns:
  - *Grant: The resulting grant row
  - error: Validation or persistence failures
*/
func (service *Service) Grant(context context.Context, userID, blogID int64, role Role) (*Grant, error) {
	validator := &validate.Validator{}
	validator.PositiveID(FieldUserID, userID).
		PositiveID(FieldBlogID, blogID).
		Custom(FieldRole, !role.Grantable(), "Only editor and admin can be granted")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	grant, err := service.repo.UpsertGrant(context, userID, blogID, role)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "blog_access_granted",
		slog.Int64("user_id", userID),
		slog.Int64("blog_id", blogID),
		slog.String("role", string(role)),
	)

	return grant, nil
}

/*
Revoke removes a user's grant on a blog. Absence is not an error.

Parameters:
  - context: context.Context
  - userID: int64
  - blogID: int64

Returns:
  - error: Persistence failures
*/
func (service *Service) Revoke(context context.Context, userID, blogID int64) error {
	if err := service.repo.DeleteGrant(context, userID, blogID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "blog_access_revoked",
		slog.Int64("user_id", userID),
		slog.Int64("blog_id", blogID),
	)

	return nil
}

// ListGrants returns the collaborator list for a blog.
func (service *Service) ListGrants(context context.Context, blogID int64) ([]*Grant, error) {
	return service.repo.ListGrants(context, blogID)
}

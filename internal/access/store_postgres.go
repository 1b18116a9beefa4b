// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cbrazil/redator/internal/platform/apperr"
	"github.com/cbrazil/redator/internal/platform/dberr"
	"github.com/cbrazil/redator/internal/platform/sec"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed access store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Account Resolution

/*
FindAccountByEmail retrieves the minimal account view by exact email match.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated minimal account view
  - error: dberr.ErrNotFound or retrieval failures
*/
func (repository *PostgresRepository) FindAccountByEmail(context context.Context, email string) (*Account, error) {
	const query = `
		SELECT id, email, name
		FROM users.account
		WHERE email = $1
	`
	account := &Account{}
	err := repository.db.QueryRow(context, query, email).Scan(&account.ID, &account.Email, &account.Name)
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_email")
	}
	return account, nil
}

/*
CreateAccount inserts a new account row, deferring to the unique email
constraint as the backstop against concurrent first logins.

Description: Issues INSERT ... ON CONFLICT DO NOTHING. When the row already
exists (a concurrent request won the race), the existing row is re-selected
and returned, so the operation is idempotent per email.

Parameters:
  - context: context.Context
  - email: string
  - name: string

Returns:
  - *Account: Inserted or pre-existing row
  - error: Persistence failures
*/
func (repository *PostgresRepository) CreateAccount(context context.Context, email, name string) (*Account, error) {
	const query = `
		INSERT INTO users.account (email, name, role, createdat, updatedat)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING
		RETURNING id, email, name
	`
	account := &Account{}
	err := repository.db.QueryRow(context, query, email, name, sec.RoleUser).
		Scan(&account.ID, &account.Email, &account.Name)

	// ErrNoRows here means the conflict branch fired: another request inserted
	// the row first. Fall back to the existing row.
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.FindAccountByEmail(context, email)
	}
	if err != nil {
		return nil, dberr.Wrap(err, "create_account")
	}

	return account, nil
}

// # Blog Ownership

/*
FindBlogOwner retrieves a blog's identity and owner column.

Parameters:
  - context: context.Context
  - blogID: int64

Returns:
  - *BlogRef: Blog identity plus nullable owner
  - error: dberr.ErrNotFound if the blog does not exist
*/
func (repository *PostgresRepository) FindBlogOwner(context context.Context, blogID int64) (*BlogRef, error) {
	const query = `SELECT id, ownerid FROM blog.blog WHERE id = $1`

	ref := &BlogRef{}
	err := repository.db.QueryRow(context, query, blogID).Scan(&ref.ID, &ref.OwnerID)
	if err != nil {
		return nil, dberr.Wrap(err, "find_blog_owner")
	}
	return ref, nil
}

// # Grant Management

/*
FindGrant retrieves the single grant row for a (user, blog) pair.

Description: The stored role text passes through [ParseRole]; a row carrying
an unrecognized role surfaces as an internal error, never as a grant.

Parameters:
  - context: context.Context
  - userID: int64
  - blogID: int64

Returns:
  - *Grant: Hydrated grant with validated role
  - error: dberr.ErrNotFound or retrieval failures
*/
func (repository *PostgresRepository) FindGrant(context context.Context, userID, blogID int64) (*Grant, error) {
	const query = `
		SELECT userid, blogid, role, createdat, updatedat
		FROM blog.access
		WHERE userid = $1 AND blogid = $2
	`
	grant := &Grant{}
	var rawRole string
	err := repository.db.QueryRow(context, query, userID, blogID).
		Scan(&grant.UserID, &grant.BlogID, &rawRole, &grant.CreatedAt, &grant.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_grant")
	}

	role, err := ParseRole(rawRole)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("find_grant: %w", err))
	}
	grant.Role = role

	return grant, nil
}

/*
UpsertGrant inserts or overwrites the grant for a (user, blog) pair.

Description: Single-statement upsert on the composite primary key, so
concurrent grants for the same pair serialize at the store.

Parameters:
  - context: context.Context
  - userID: int64
  - blogID: int64
  - role: Role

Returns:
  - *Grant: The resulting row
  - error: Persistence failures (including FK violations for unknown users/blogs)
*/
func (repository *PostgresRepository) UpsertGrant(context context.Context, userID, blogID int64, role Role) (*Grant, error) {
	const query = `
		INSERT INTO blog.access (userid, blogid, role, createdat, updatedat)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (userid, blogid) DO UPDATE SET role = EXCLUDED.role, updatedat = NOW()
		RETURNING userid, blogid, role, createdat, updatedat
	`
	grant := &Grant{}
	var rawRole string
	err := repository.db.QueryRow(context, query, userID, blogID, role).
		Scan(&grant.UserID, &grant.BlogID, &rawRole, &grant.CreatedAt, &grant.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "upsert_grant")
	}
	parsed, err := ParseRole(rawRole)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("upsert_grant: %w", err))
	}
	grant.Role = parsed

	return grant, nil
}

/*
DeleteGrant removes the grant for a (user, blog) pair. Idempotent.

Parameters:
  - context: context.Context
  - userID: int64
  - blogID: int64

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) DeleteGrant(context context.Context, userID, blogID int64) error {
	const query = `DELETE FROM blog.access WHERE userid = $1 AND blogid = $2`
	_, err := repository.db.Exec(context, query, userID, blogID)
	return dberr.Wrap(err, "delete_grant")
}

/*
ListGrants returns all grants on a blog joined with account display fields.

Parameters:
  - context: context.Context
  - blogID: int64

Returns:
  - []*Grant: Collaborators ordered by grant creation
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListGrants(context context.Context, blogID int64) ([]*Grant, error) {
	const query = `
		SELECT a.userid, a.blogid, a.role, a.createdat, a.updatedat, u.email, u.name
		FROM blog.access a
		JOIN users.account u ON a.userid = u.id
		WHERE a.blogid = $1
		ORDER BY a.createdat ASC
	`
	rows, err := repository.db.Query(context, query, blogID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_grants")
	}
	defer rows.Close()

	var grants []*Grant
	for rows.Next() {
		grant := &Grant{}
		var rawRole string
		if err := rows.Scan(&grant.UserID, &grant.BlogID, &rawRole, &grant.CreatedAt, &grant.UpdatedAt, &grant.Email, &grant.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_grant")
		}

		role, err := ParseRole(rawRole)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("list_grants: %w", err))
		}
		grant.Role = role

		grants = append(grants, grant)
	}

	return grants, nil
}

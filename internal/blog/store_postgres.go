// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package blog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cbrazil/redator/internal/platform/dberr"
	"github.com/cbrazil/redator/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed blog store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const blogColumns = `
	id, ownerid, name, slug, description, domain, status,
	theme, language, seotitle, seodescription, createdat, updatedat`

/*
Create persists a new blog row and hydrates the generated ID.

Parameters:
  - context: context.Context
  - blog: *Blog

Returns:
  - error: dberr.ErrDuplicate on a slug collision, or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, blog *Blog) error {
	const query = `
		INSERT INTO blog.blog (
			ownerid, name, slug, description, domain, status,
			theme, language, seotitle, seodescription, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		blog.OwnerID,
		blog.Name,
		blog.Slug,
		blog.Description,
		blog.Domain,
		blog.Status,
		blog.Settings.Theme,
		blog.Settings.Language,
		blog.Settings.SEOTitle,
		blog.Settings.SEODescription,
	).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "blog_create")
	}

	return nil
}

/*
FindByID retrieves a blog by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Blog: Hydrated entity
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Blog, error) {
	query := fmt.Sprintf("SELECT %s FROM blog.blog WHERE id = $1", blogColumns)

	blog := &Blog{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&blog.ID,
		&blog.OwnerID,
		&blog.Name,
		&blog.Slug,
		&blog.Description,
		&blog.Domain,
		&blog.Status,
		&blog.Settings.Theme,
		&blog.Settings.Language,
		&blog.Settings.SEOTitle,
		&blog.Settings.SEODescription,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "blog_find_by_id")
	}

	return blog, nil
}

/*
ListVisible returns one page of blogs visible to the user.

Description: Visibility is ownership, an access grant, or everything when the
caller is a platform master. The two branches share the ordering and paging
tail so the page boundaries stay stable across both.

Parameters:
  - context: context.Context
  - userID: int64
  - all: bool
  - params: pagination.Params

Returns:
  - []*Blog: Page of blogs, newest first
  - int: Total visible count
  - error: Query or scan failures
*/
func (repository *PostgresRepository) ListVisible(context context.Context, userID int64, all bool, params pagination.Params) ([]*Blog, int, error) {
	// Masters see the whole tenancy; everyone else sees ownership or a grant.
	const visibility = `
		WHERE ownerid = $1
		   OR EXISTS (
			SELECT 1 FROM blog.access
			WHERE blog.access.blogid = blog.blog.id AND blog.access.userid = $1
		   )`

	countQuery := "SELECT COUNT(*) FROM blog.blog" + visibility
	countArgs := []any{userID}
	listQuery := fmt.Sprintf(`
		SELECT %s FROM blog.blog
		%s
		ORDER BY createdat DESC, id DESC
		LIMIT $2 OFFSET $3`, blogColumns, visibility)
	listArgs := []any{userID, params.Limit, params.Offset()}

	if all {
		countQuery = "SELECT COUNT(*) FROM blog.blog"
		countArgs = nil
		listQuery = fmt.Sprintf(`
			SELECT %s FROM blog.blog
			ORDER BY createdat DESC, id DESC
			LIMIT $1 OFFSET $2`, blogColumns)
		listArgs = []any{params.Limit, params.Offset()}
	}

	var total int
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_count_failed: %w", err)
	}

	rows, err := repository.pool.Query(context, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var blogs []*Blog
	for rows.Next() {
		blog := &Blog{}
		if err := rows.Scan(
			&blog.ID,
			&blog.OwnerID,
			&blog.Name,
			&blog.Slug,
			&blog.Description,
			&blog.Domain,
			&blog.Status,
			&blog.Settings.Theme,
			&blog.Settings.Language,
			&blog.Settings.SEOTitle,
			&blog.Settings.SEODescription,
			&blog.CreatedAt,
			&blog.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_blog_repo_list_scan_failed: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_list_rows_failed: %w", err)
	}

	return blogs, total, nil
}

/*
Update persists the blog's mutable metadata fields.

Parameters:
  - context: context.Context
  - blog: *Blog

Returns:
  - error: dberr.ErrDuplicate on a slug collision, or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, blog *Blog) error {
	const query = `
		UPDATE blog.blog
		SET name = $2, slug = $3, description = $4, domain = $5, status = $6, updatedat = NOW()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query,
		blog.ID,
		blog.Name,
		blog.Slug,
		blog.Description,
		blog.Domain,
		blog.Status,
	)

	if err != nil {
		return dberr.Wrap(err, "blog_update")
	}

	return nil
}

/*
UpdateSettings replaces the presentation settings block.

Parameters:
  - context: context.Context
  - blogID: int64
  - settings: Settings

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) UpdateSettings(context context.Context, blogID int64, settings Settings) error {
	const query = `
		UPDATE blog.blog
		SET theme = $2, language = $3, seotitle = $4, seodescription = $5, updatedat = NOW()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query,
		blogID,
		settings.Theme,
		settings.Language,
		settings.SEOTitle,
		settings.SEODescription,
	)

	if err != nil {
		return fmt.Errorf("postgres_blog_repo_update_settings_failed: %w", err)
	}

	return nil
}

/*
TransferOwnership moves the blog to a new owner inside one transaction.

Description: Updates the owner column and deletes any grant row the new owner
held on the blog, since ownership dominates grants and a leftover row would
only resurface if ownership moved again.

Parameters:
  - context: context.Context
  - blogID: int64
  - newOwnerID: int64

Returns:
  - error: dberr.ErrBadReference when the new owner does not exist,
    or execution errors
*/
func (repository *PostgresRepository) TransferOwnership(context context.Context, blogID int64, newOwnerID int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_blog_repo_transfer_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	const updateQuery = "UPDATE blog.blog SET ownerid = $2, updatedat = NOW() WHERE id = $1"
	if _, err := transaction.Exec(context, updateQuery, blogID, newOwnerID); err != nil {
		return dberr.Wrap(err, "blog_transfer_ownership")
	}

	const clearGrantQuery = "DELETE FROM blog.access WHERE blogid = $1 AND userid = $2"
	if _, err := transaction.Exec(context, clearGrantQuery, blogID, newOwnerID); err != nil {
		return fmt.Errorf("postgres_blog_repo_transfer_clear_grant_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_blog_repo_transfer_commit_failed: %w", err)
	}

	return nil
}

/*
Delete removes the blog and its dependent rows in one transaction.

Description: Grants and articles carry ON DELETE CASCADE foreign keys as the
schema-level backstop; the explicit deletes keep the operation self-describing
and correct even against a schema missing the cascades.

Parameters:
  - context: context.Context
  - blogID: int64

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, blogID int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_blog_repo_delete_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	const deleteGrantsQuery = "DELETE FROM blog.access WHERE blogid = $1"
	if _, err := transaction.Exec(context, deleteGrantsQuery, blogID); err != nil {
		return fmt.Errorf("postgres_blog_repo_delete_grants_failed: %w", err)
	}

	const deleteBlogQuery = "DELETE FROM blog.blog WHERE id = $1"
	if _, err := transaction.Exec(context, deleteBlogQuery, blogID); err != nil {
		return fmt.Errorf("postgres_blog_repo_delete_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_blog_repo_delete_commit_failed: %w", err)
	}

	return nil
}

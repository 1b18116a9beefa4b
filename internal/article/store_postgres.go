// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package article

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cbrazil/redator/internal/platform/dberr"
	"github.com/cbrazil/redator/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed article store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const articleColumns = `
	id, blogid, title, slug, summary, content, status,
	createdby, authorid, categoryid, publishedat, createdat, updatedat`

/*
Create persists a new article and its tag links in one transaction.

Description: The root insert and the junction sync either both land or both
roll back, preventing orphaned tag links on constraint failures.

Parameters:
  - context: context.Context
  - article: *Article

Returns:
  - error: dberr.ErrDuplicate, dberr.ErrBadReference, or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, article *Article) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_article_repo_create_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	const query = `
		INSERT INTO blog.article (
			blogid, title, slug, summary, content, status,
			createdby, authorid, categoryid, publishedat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, createdat, updatedat`

	err = transaction.QueryRow(context, query,
		article.BlogID,
		article.Title,
		article.Slug,
		article.Summary,
		article.Content,
		article.Status,
		article.CreatedBy,
		article.AuthorID,
		article.CategoryID,
		article.PublishedAt,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "article_create")
	}

	if err := repository.syncTags(context, transaction, article.ID, article.TagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_article_repo_create_commit_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves an article within a blog, hydrating its tags.

Parameters:
  - context: context.Context
  - blogID: int64
  - id: int64

Returns:
  - *Article: Hydrated entity
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, blogID, id int64) (*Article, error) {
	query := fmt.Sprintf("SELECT %s FROM blog.article WHERE blogid = $1 AND id = $2", articleColumns)

	article := &Article{}
	err := repository.pool.QueryRow(context, query, blogID, id).Scan(
		&article.ID,
		&article.BlogID,
		&article.Title,
		&article.Slug,
		&article.Summary,
		&article.Content,
		&article.Status,
		&article.CreatedBy,
		&article.AuthorID,
		&article.CategoryID,
		&article.PublishedAt,
		&article.CreatedAt,
		&article.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "article_find_by_id")
	}

	tags, err := repository.loadTags(context, article.ID)
	if err != nil {
		return nil, err
	}
	article.Tags = tags

	return article, nil
}

/*
List returns one page of articles matching the filter, newest first.

Parameters:
  - context: context.Context
  - blogID: int64
  - filter: Filter
  - params: pagination.Params

Returns:
  - []*Article: Page of articles (tags not hydrated)
  - int: Total matching count
  - error: Query or scan failures
*/
func (repository *PostgresRepository) List(context context.Context, blogID int64, filter Filter, params pagination.Params) ([]*Article, int, error) {
	conditions := []string{"blogid = $1"}
	args := []any{blogID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("categoryid = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM blog.article " + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_count_failed: %w", err)
	}

	args = append(args, params.Limit, params.Offset())
	query := fmt.Sprintf(`
		SELECT %s FROM blog.article
		%s
		ORDER BY createdat DESC, id DESC
		LIMIT $%d OFFSET $%d`, articleColumns, where, len(args)-1, len(args))

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		article := &Article{}
		if err := rows.Scan(
			&article.ID,
			&article.BlogID,
			&article.Title,
			&article.Slug,
			&article.Summary,
			&article.Content,
			&article.Status,
			&article.CreatedBy,
			&article.AuthorID,
			&article.CategoryID,
			&article.PublishedAt,
			&article.CreatedAt,
			&article.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_article_repo_list_scan_failed: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_article_repo_list_rows_failed: %w", err)
	}

	return articles, total, nil
}

/*
Update persists the article's mutable fields and resyncs its tag links.

Parameters:
  - context: context.Context
  - article: *Article

Returns:
  - error: dberr.ErrDuplicate, dberr.ErrBadReference, or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, article *Article) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_article_repo_update_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	const query = `
		UPDATE blog.article
		SET title = $3, slug = $4, summary = $5, content = $6,
		    authorid = $7, categoryid = $8, updatedat = NOW()
		WHERE blogid = $1 AND id = $2`

	result, err := transaction.Exec(context, query,
		article.BlogID,
		article.ID,
		article.Title,
		article.Slug,
		article.Summary,
		article.Content,
		article.AuthorID,
		article.CategoryID,
	)
	if err != nil {
		return dberr.Wrap(err, "article_update")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if err := repository.syncTags(context, transaction, article.ID, article.TagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_article_repo_update_commit_failed: %w", err)
	}

	return nil
}

/*
SetStatus flips the publication state.

Description: Publishing stamps publishedat once and keeps the original stamp
on republish; unpublishing leaves it in place as a historical record.

Parameters:
  - context: context.Context
  - blogID: int64
  - id: int64
  - status: Status

Returns:
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresRepository) SetStatus(context context.Context, blogID, id int64, status Status) error {
	const query = `
		UPDATE blog.article
		SET status = $3,
		    publishedat = CASE WHEN $3 = 'published' THEN COALESCE(publishedat, NOW()) ELSE publishedat END,
		    updatedat = NOW()
		WHERE blogid = $1 AND id = $2`

	result, err := repository.pool.Exec(context, query, blogID, id, status)
	if err != nil {
		return fmt.Errorf("postgres_article_repo_set_status_failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Delete removes the article. Tag links go with it via the cascading foreign key.

Parameters:
  - context: context.Context
  - blogID: int64
  - id: int64

Returns:
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, blogID, id int64) error {
	const query = "DELETE FROM blog.article WHERE blogid = $1 AND id = $2"

	result, err := repository.pool.Exec(context, query, blogID, id)
	if err != nil {
		return fmt.Errorf("postgres_article_repo_delete_failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// # Junction Maintenance

// syncTags replaces the article's tag links inside the caller's transaction.
func (repository *PostgresRepository) syncTags(context context.Context, transaction pgx.Tx, articleID int64, tagIDs []int64) error {
	if tagIDs == nil {
		return nil
	}

	const clearQuery = "DELETE FROM blog.articletag WHERE articleid = $1"
	if _, err := transaction.Exec(context, clearQuery, articleID); err != nil {
		return fmt.Errorf("postgres_article_repo_clear_tags_failed: %w", err)
	}

	const insertQuery = "INSERT INTO blog.articletag (articleid, tagid) VALUES ($1, $2)"
	for _, tagID := range tagIDs {
		if _, err := transaction.Exec(context, insertQuery, articleID, tagID); err != nil {
			return dberr.Wrap(err, "article_sync_tags")
		}
	}

	return nil
}

// loadTags hydrates the denormalized tag views for an article.
func (repository *PostgresRepository) loadTags(context context.Context, articleID int64) ([]Tag, error) {
	const query = `
		SELECT t.id, t.name, t.slug
		FROM blog.articletag link
		JOIN blog.tag t ON t.id = link.tagid
		WHERE link.articleid = $1
		ORDER BY t.name`

	rows, err := repository.pool.Query(context, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("postgres_article_repo_load_tags_failed: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("postgres_article_repo_load_tags_scan_failed: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_article_repo_load_tags_rows_failed: %w", err)
	}

	return tags, nil
}

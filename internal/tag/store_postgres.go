// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package tag

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cbrazil/redator/internal/platform/apperr"
	"github.com/cbrazil/redator/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tag store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, tag *Tag) error {
	const query = `
		INSERT INTO blog.tag (blogid, name, slug, createdat)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, createdat`

	err := repository.pool.QueryRow(context, query,
		tag.BlogID,
		tag.Name,
		tag.Slug,
	).Scan(&tag.ID, &tag.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_tag_repo_create")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, blogID, id int64) (*Tag, error) {
	const query = `
		SELECT id, blogid, name, slug, createdat
		FROM blog.tag
		WHERE blogid = $1 AND id = $2`

	tag := &Tag{}
	err := repository.pool.QueryRow(context, query, blogID, id).Scan(
		&tag.ID,
		&tag.BlogID,
		&tag.Name,
		&tag.Slug,
		&tag.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Tag")
		}
		return nil, dberr.Wrap(err, "postgres_tag_repo_find_by_id")
	}

	return tag, nil
}

func (repository *PostgresRepository) ListByBlog(context context.Context, blogID int64) ([]*Tag, error) {
	const query = `
		SELECT id, blogid, name, slug, createdat
		FROM blog.tag
		WHERE blogid = $1
		ORDER BY name ASC`

	rows, err := repository.pool.Query(context, query, blogID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_tag_repo_list")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.BlogID, &tag.Name, &tag.Slug, &tag.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "postgres_tag_repo_scan")
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (repository *PostgresRepository) Update(context context.Context, tag *Tag) error {
	const query = `
		UPDATE blog.tag
		SET name = $3, slug = $4
		WHERE blogid = $1 AND id = $2`

	result, err := repository.pool.Exec(context, query, tag.BlogID, tag.ID, tag.Name, tag.Slug)
	if err != nil {
		return dberr.Wrap(err, "postgres_tag_repo_update")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, blogID, id int64) error {
	const query = `DELETE FROM blog.tag WHERE blogid = $1 AND id = $2`

	result, err := repository.pool.Exec(context, query, blogID, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_tag_repo_delete")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package category

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

// NewPostgresRepository constructs a PostgreSQL backed category store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const categoryColumns = `id, blogid, name, slug, description, createdat, updatedat`

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO blog.category (blogid, name, slug, description, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		category.BlogID,
		category.Name,
		category.Slug,
		category.Description,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_category_repo_create")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, blogID, id int64) (*Category, error) {
	const query = `
		SELECT ` + categoryColumns + `
		FROM blog.category
		WHERE blogid = $1 AND id = $2`

	category := &Category{}
	err := repository.pool.QueryRow(context, query, blogID, id).Scan(
		&category.ID,
		&category.BlogID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, dberr.Wrap(err, "postgres_category_repo_find_by_id")
	}

	return category, nil
}

func (repository *PostgresRepository) ListByBlog(context context.Context, blogID int64) ([]*Category, error) {
	const query = `
		SELECT ` + categoryColumns + `
		FROM blog.category
		WHERE blogid = $1
		ORDER BY name ASC`

	rows, err := repository.pool.Query(context, query, blogID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_category_repo_list")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(
			&category.ID,
			&category.BlogID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "postgres_category_repo_scan")
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE blog.category
		SET name = $3, slug = $4, description = $5, updatedat = NOW()
		WHERE blogid = $1 AND id = $2`

	result, err := repository.pool.Exec(context, query,
		category.BlogID,
		category.ID,
		category.Name,
		category.Slug,
		category.Description,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_category_repo_update")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, blogID, id int64) error {
	const query = `DELETE FROM blog.category WHERE blogid = $1 AND id = $2`

	result, err := repository.pool.Exec(context, query, blogID, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_category_repo_delete")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package author

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

// NewPostgresRepository constructs a PostgreSQL backed author store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const authorColumns = `id, blogid, name, bio, imageurl, createdat, updatedat`

func (repository *PostgresRepository) Create(context context.Context, author *Author) error {
	const query = `
		INSERT INTO blog.author (blogid, name, bio, imageurl, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		author.BlogID,
		author.Name,
		author.Bio,
		author.ImageURL,
	).Scan(&author.ID, &author.CreatedAt, &author.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_author_repo_create")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, blogID, id int64) (*Author, error) {
	const query = `
		SELECT ` + authorColumns + `
		FROM blog.author
		WHERE blogid = $1 AND id = $2`

	author := &Author{}
	err := repository.pool.QueryRow(context, query, blogID, id).Scan(
		&author.ID,
		&author.BlogID,
		&author.Name,
		&author.Bio,
		&author.ImageURL,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Author")
		}
		return nil, dberr.Wrap(err, "postgres_author_repo_find_by_id")
	}

	return author, nil
}

func (repository *PostgresRepository) ListByBlog(context context.Context, blogID int64) ([]*Author, error) {
	const query = `
		SELECT ` + authorColumns + `
		FROM blog.author
		WHERE blogid = $1
		ORDER BY name ASC`

	rows, err := repository.pool.Query(context, query, blogID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_author_repo_list")
	}
	defer rows.Close()

	authors := make([]*Author, 0)
	for rows.Next() {
		author := &Author{}
		if err := rows.Scan(
			&author.ID,
			&author.BlogID,
			&author.Name,
			&author.Bio,
			&author.ImageURL,
			&author.CreatedAt,
			&author.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "postgres_author_repo_scan")
		}
		authors = append(authors, author)
	}

	return authors, rows.Err()
}

func (repository *PostgresRepository) Update(context context.Context, author *Author) error {
	const query = `
		UPDATE blog.author
		SET name = $3, bio = $4, imageurl = $5, updatedat = NOW()
		WHERE blogid = $1 AND id = $2`

	result, err := repository.pool.Exec(context, query,
		author.BlogID,
		author.ID,
		author.Name,
		author.Bio,
		author.ImageURL,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_author_repo_update")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, blogID, id int64) error {
	const query = `DELETE FROM blog.author WHERE blogid = $1 AND id = $2`

	result, err := repository.pool.Exec(context, query, blogID, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_author_repo_delete")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package article

import (
	"context"

	"github.com/cbrazil/redator/pkg/pagination"
)

// # Article Data Access

// Repository defines the data access contract for articles.
//
// All lookups are scoped by blog ID: an article ID from another blog behaves
// exactly like a missing row.
type Repository interface {

	/*
		Create persists a new article with its tag associations, assigning
		its ID.

		Parameters:
		  - context: context.Context
		  - article: *Article

		Returns:
		  - error: dberr.ErrDuplicate on a slug collision within the blog,
		    dberr.ErrBadReference on an unknown author/category/tag, or
		    persistence failures
	*/
	Create(context context.Context, article *Article) error

	/*
		FindByID returns the article with the given ID inside the blog, with
		its tags hydrated.

		Parameters:
		  - context: context.Context
		  - blogID: int64
		  - id: int64

		Returns:
		  - *Article: Hydrated entity
		  - error: dberr.ErrNotFound or retrieval failures
	*/
	FindByID(context context.Context, blogID, id int64) (*Article, error)

	/*
		List returns one page of the blog's articles matching the filter.

		Parameters:
		  - context: context.Context
		  - blogID: int64
		  - filter: Filter
		  - params: pagination.Params

		Returns:
		  - []*Article: Page of articles, newest first (tags not hydrated)
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	List(context context.Context, blogID int64, filter Filter, params pagination.Params) ([]*Article, int, error)

	/*
		Update persists the article's mutable fields and replaces its tag
		associations in one transaction.

		Parameters:
		  - context: context.Context
		  - article: *Article

		Returns:
		  - error: dberr.ErrDuplicate, dberr.ErrBadReference, or persistence
		    failures
	*/
	Update(context context.Context, article *Article) error

	/*
		SetStatus flips the publication state, stamping or clearing the
		publication time.

		Parameters:
		  - context: context.Context
		  - blogID: int64
		  - id: int64
		  - status: Status

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	SetStatus(context context.Context, blogID, id int64, status Status) error

	/*
		Delete removes the article and its tag associations.

		Parameters:
		  - context: context.Context
		  - blogID: int64
		  - id: int64

		Returns:
		  - error: dberr.ErrNotFound or persistence failures
	*/
	Delete(context context.Context, blogID, id int64) error
}

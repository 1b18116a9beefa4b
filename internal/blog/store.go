// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package blog

import (
	"context"

	"github.com/cbrazil/redator/pkg/pagination"
)

// # Blog Data Access

// Repository defines the data access contract for blogs.
type Repository interface {

	/*
		Create persists a new blog, assigning its ID.

		Parameters:
		  - context: context.Context
		  - blog: *Blog

		Returns:
		  - error: dberr.ErrDuplicate on a slug collision, or persistence failures
	*/
	Create(context context.Context, blog *Blog) error

	/*
		FindByID returns the blog with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Blog: Hydrated entity
		  - error: dberr.ErrNotFound or retrieval failures
	*/
	FindByID(context context.Context, id int64) (*Blog, error)

	/*
		ListVisible returns one page of blogs the user may see: blogs they
		own, blogs they hold a grant on, or every blog when all is true.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - all: bool
		  - params: pagination.Params

		Returns:
		  - []*Blog: Page of blogs, newest first
		  - int: Total visible count
		  - error: Retrieval failures
	*/
	ListVisible(context context.Context, userID int64, all bool, params pagination.Params) ([]*Blog, int, error)

	/*
		Update persists changes to the blog's mutable metadata fields.

		Parameters:
		  - context: context.Context
		  - blog: *Blog

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, blog *Blog) error

	/*
		UpdateSettings replaces the blog's presentation settings.

		Parameters:
		  - context: context.Context
		  - blogID: int64
		  - settings: Settings

		Returns:
		  - error: Persistence failures
	*/
	UpdateSettings(context context.Context, blogID int64, settings Settings) error

	/*
		TransferOwnership atomically moves the blog to a new owner and clears
		any grant row the new owner held on it (ownership dominates grants).

		Parameters:
		  - context: context.Context
		  - blogID: int64
		  - newOwnerID: int64

		Returns:
		  - error: dberr.ErrBadReference when the new owner does not exist,
		    or persistence failures
	*/
	TransferOwnership(context context.Context, blogID int64, newOwnerID int64) error

	/*
		Delete removes the blog and its dependent rows (grants, articles) in
		one transaction.

		Parameters:
		  - context: context.Context
		  - blogID: int64

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, blogID int64) error
}

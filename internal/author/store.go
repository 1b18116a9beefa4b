// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package author

import "context"

// Repository defines the data access contract. All lookups are scoped by
// blog ID.
type Repository interface {
	Create(context context.Context, author *Author) error
	FindByID(context context.Context, blogID, id int64) (*Author, error)
	ListByBlog(context context.Context, blogID int64) ([]*Author, error)
	Update(context context.Context, author *Author) error
	Delete(context context.Context, blogID, id int64) error
}

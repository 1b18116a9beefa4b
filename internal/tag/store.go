// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package tag

import "context"

// Repository defines the data access contract. All lookups are scoped by
// blog ID.
type Repository interface {
	Create(context context.Context, tag *Tag) error
	FindByID(context context.Context, blogID, id int64) (*Tag, error)
	ListByBlog(context context.Context, blogID int64) ([]*Tag, error)
	Update(context context.Context, tag *Tag) error
	Delete(context context.Context, blogID, id int64) error
}

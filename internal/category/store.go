// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package category

import "context"

// Repository defines the data access contract. All lookups are scoped by
// blog ID.
type Repository interface {
	Create(context context.Context, category *Category) error
	FindByID(context context.Context, blogID, id int64) (*Category, error)
	ListByBlog(context context.Context, blogID int64) ([]*Category, error)
	Update(context context.Context, category *Category) error
	Delete(context context.Context, blogID, id int64) error
}

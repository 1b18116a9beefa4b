// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

// Package category manages the per-blog category taxonomy.
//
// Categories give a blog a coarse navigation structure; each article may
// reference at most one. Slugs are unique within a blog.
package category

import "time"

// Category is a single taxonomy entry inside a blog.
type Category struct {
	ID          int64     `json:"id"`
	BlogID      int64     `json:"blog_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Global field names for validation errors.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
)

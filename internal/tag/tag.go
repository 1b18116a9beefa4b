// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

// Package tag manages the per-blog tag taxonomy.
//
// Tags are the fine-grained counterpart to categories; an article may carry
// any number of them. Slugs are unique within a blog.
package tag

import "time"

// Tag is a single label inside a blog.
type Tag struct {
	ID        int64     `json:"id"`
	BlogID    int64     `json:"blog_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Global field names for validation errors.
const (
	FieldID   = "id"
	FieldName = "name"
	FieldSlug = "slug"
)

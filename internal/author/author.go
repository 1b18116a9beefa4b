// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

// Package author manages a blog's byline authors.
//
// Byline authors are display identities attached to articles. They are
// editorial data, not platform accounts; a collaborator writing under a pen
// name and a guest columnist with no login both live here.
package author

import "time"

// Author represents a byline identity inside a blog.
type Author struct {
	ID        int64     `json:"id"`
	BlogID    int64     `json:"blog_id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	ImageURL  *string   `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Global field names for validation errors.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldBio      = "bio"
	FieldImageURL = "image_url"
)

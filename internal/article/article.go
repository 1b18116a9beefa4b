// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

/*
Package article defines the content entities of a Redator blog.

It manages the lifecycle of posts inside a single blog: drafting, editing,
categorization, tagging, and publication.

Core Responsibility:

  - Content: Drafts and published posts with URL-safe slugs per blog.
  - Organization: Category and tag associations for discovery.
  - Assistance: An optional text generator that drafts content on demand.

Every operation here is blog-scoped; the access package decides who may call
what before this package runs.
*/
package article

import "time"

// # Domain Enums

// Status represents the publication state of an article.
type Status string

const (
	// StatusDraft indicates the article is only visible to collaborators.
	StatusDraft Status = "draft"

	// StatusPublished indicates the article is live on the blog.
	StatusPublished Status = "published"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished:
		return true
	}
	return false
}

// # Core Entities

// Article is a single post inside a blog.
type Article struct {
	ID      int64 `json:"id"`
	BlogID  int64 `json:"blog_id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"` // Unique within the blog
	Summary string `json:"summary,omitempty"`
	Content string `json:"content"`
	Status  Status `json:"status"`

	CreatedBy  int64  `json:"created_by"`           // Account that created the draft
	AuthorID   *int64 `json:"author_id,omitempty"`  // Byline author, optional
	CategoryID *int64 `json:"category_id,omitempty"`

	Tags   []Tag   `json:"tags,omitempty"`    // Hydrated on reads
	TagIDs []int64 `json:"tag_ids,omitempty"` // Junction input only

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Tag is the denormalized tag view attached to an [Article].
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered article list query.
type Filter struct {
	Status     Status `json:"status,omitempty"`
	CategoryID *int64 `json:"category_id,omitempty"`
	Query      string `json:"q,omitempty"` // Title substring match
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID         = "id"
	FieldBlogID     = "blog_id"
	FieldTitle      = "title"
	FieldSlug       = "slug"
	FieldSummary    = "summary"
	FieldContent    = "content"
	FieldStatus     = "status"
	FieldAuthorID   = "author_id"
	FieldCategoryID = "category_id"
	FieldTagIDs     = "tag_ids"
	FieldTopic      = "topic"
	FieldContext    = "context"
)

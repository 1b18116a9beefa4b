// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

/*
Package blog defines the tenant aggregate of the Redator platform.

Each blog is an isolated publication space with its own collaborators,
articles, and presentation settings. Authorization for every blog-scoped
operation flows through the access package; this package owns the blog's
lifecycle and metadata.

Core Responsibility:

  - Tenancy: Creation, ownership, and transfer of publication spaces.
  - Presentation: Theme and SEO settings managed by the blog owner.
  - Visibility: Listing the blogs a user owns, collaborates on, or (for
    platform masters) every blog.
*/
package blog

import "time"

// # Domain Enums

// Status represents the lifecycle state of a blog.
type Status string

const (
	// StatusActive indicates the blog is live and serving content.
	StatusActive Status = "active"

	// StatusSuspended indicates the blog was taken offline by an operator.
	StatusSuspended Status = "suspended"

	// StatusArchived indicates the blog was retired by its owner.
	StatusArchived Status = "archived"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusArchived:
		return true
	}
	return false
}

// # Core Entities

// Blog is the tenant aggregate: a single publication space.
type Blog struct {
	ID          int64  `json:"id"`
	OwnerID     *int64 `json:"owner_id,omitempty"` // nil when the owning account was removed
	Name        string `json:"name"`
	Slug        string `json:"slug"` // URL-safe identifier, unique platform-wide
	Description string `json:"description,omitempty"`
	Domain      string `json:"domain,omitempty"` // Custom domain, empty = platform subdomain
	Status      Status `json:"status"`

	Settings Settings `json:"settings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings holds the owner-managed presentation and SEO configuration.
type Settings struct {
	Theme          string `json:"theme"`
	Language       string `json:"language"` // BCP-47 language tag (e.g. "pt-BR")
	SEOTitle       string `json:"seo_title,omitempty"`
	SEODescription string `json:"seo_description,omitempty"`
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID             = "id"
	FieldOwnerID        = "owner_id"
	FieldName           = "name"
	FieldSlug           = "slug"
	FieldDescription    = "description"
	FieldDomain         = "domain"
	FieldStatus         = "status"
	FieldTheme          = "theme"
	FieldLanguage       = "language"
	FieldSEOTitle       = "seo_title"
	FieldSEODescription = "seo_description"
	FieldNewOwnerID     = "new_owner_id"
)

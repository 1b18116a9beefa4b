// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package blog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cbrazil/redator/internal/platform/validate"
	"github.com/cbrazil/redator/pkg/pagination"
	"github.com/cbrazil/redator/pkg/slug"
)

// # Defaults

const (
	// DefaultTheme is the theme applied to newly created blogs.
	DefaultTheme = "default"

	// DefaultLanguage is the content language applied to newly created blogs.
	DefaultLanguage = "pt-BR"
)

// Service implements the blog lifecycle use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs the blog [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// # Lifecycle

// CreateInput holds the data required to open a new publication space.
type CreateInput struct {
	Name        string
	Slug        string // Optional, derived from Name when empty
	Description string
	Domain      string
}

/*
Create opens a new blog owned by the calling user.

Description: The creator becomes the blog's owner; collaborators are added
later through access grants. The slug is normalized (or derived from the
name) and must be unique platform-wide.

Parameters:
  - context: context.Context
  - ownerID: int64
  - input: CreateInput

Returns:
  - *Blog: Created entity
  - err: Validation, slug conflict, or storage errors
*/
func (service *Service) Create(context context.Context, ownerID int64, input CreateInput) (*Blog, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 120).
		PositiveID(FieldOwnerID, ownerID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	blogSlug := input.Slug
	if blogSlug == "" {
		blogSlug = input.Name
	}
	blogSlug = slug.From(blogSlug)

	newBlog := &Blog{
		OwnerID:     &ownerID,
		Name:        input.Name,
		Slug:        blogSlug,
		Description: input.Description,
		Domain:      input.Domain,
		Status:      StatusActive,
		Settings: Settings{
			Theme:    DefaultTheme,
			Language: DefaultLanguage,
		},
	}

	if err := service.repository.Create(context, newBlog); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "blog_created",
		slog.Int64("blog_id", newBlog.ID),
		slog.Int64("owner_id", ownerID),
		slog.String("slug", newBlog.Slug),
	)

	return newBlog, nil
}

// Get returns the blog with the given ID.
func (service *Service) Get(context context.Context, blogID int64) (*Blog, error) {
	return service.repository.FindByID(context, blogID)
}

/*
List returns one page of blogs visible to the user.

Parameters:
  - context: context.Context
  - userID: int64
  - all: bool (platform masters see every blog)
  - params: pagination.Params

Returns:
  - []*Blog: Page of blogs
  - int: Total visible count
  - err: Retrieval failures
*/
func (service *Service) List(context context.Context, userID int64, all bool, params pagination.Params) ([]*Blog, int, error) {
	return service.repository.ListVisible(context, userID, all, params)
}

// UpdateInput holds the mutable blog metadata. Nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
	Domain      *string
	Status      *Status
}

/*
Update applies a partial metadata update to the blog.

Parameters:
  - context: context.Context
  - blogID: int64
  - input: UpdateInput

Returns:
  - *Blog: Updated entity
  - err: Validation, slug conflict, or storage errors
*/
func (service *Service) Update(context context.Context, blogID int64, input UpdateInput) (*Blog, error) {
	existing, err := service.repository.FindByID(context, blogID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Slug != nil {
		existing.Slug = slug.From(*input.Slug)
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Domain != nil {
		existing.Domain = *input.Domain
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, existing.Name).
		MaxLen(FieldName, existing.Name, 120).
		Slug(FieldSlug, existing.Slug).
		Custom(FieldStatus, !existing.Status.IsValid(), "Unknown blog status")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// # Settings

/*
UpdateSettings replaces the blog's presentation settings.

Parameters:
  - context: context.Context
  - blogID: int64
  - settings: Settings

Returns:
  - err: Validation or storage errors
*/
func (service *Service) UpdateSettings(context context.Context, blogID int64, settings Settings) error {
	validator := &validate.Validator{}
	validator.Required(FieldTheme, settings.Theme).
		Required(FieldLanguage, settings.Language).
		MaxLen(FieldSEOTitle, settings.SEOTitle, 160).
		MaxLen(FieldSEODescription, settings.SEODescription, 320)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.UpdateSettings(context, blogID, settings); err != nil {
		return fmt.Errorf("blog_service_update_settings_failed: %w", err)
	}

	return nil
}

// # Ownership

/*
TransferOwnership hands the blog to another user.

Description: Ownership is not a grantable role; this is the only way a blog
changes owners. The previous owner loses owner standing immediately and keeps
access only through whatever grant they hold afterwards.

Parameters:
  - context: context.Context
  - blogID: int64
  - newOwnerID: int64

Returns:
  - err: Validation, unknown-user, or storage errors
*/
func (service *Service) TransferOwnership(context context.Context, blogID int64, newOwnerID int64) error {
	validator := &validate.Validator{}
	validator.PositiveID(FieldNewOwnerID, newOwnerID)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.TransferOwnership(context, blogID, newOwnerID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "blog_ownership_transferred",
		slog.Int64("blog_id", blogID),
		slog.Int64("new_owner_id", newOwnerID),
	)

	return nil
}

/*
Delete removes the blog together with its grants and content.

Parameters:
  - context: context.Context
  - blogID: int64

Returns:
  - err: Storage errors
*/
func (service *Service) Delete(context context.Context, blogID int64) error {
	if err := service.repository.Delete(context, blogID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "blog_deleted",
		slog.Int64("blog_id", blogID),
	)

	return nil
}

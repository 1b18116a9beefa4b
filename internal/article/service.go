// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package article

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cbrazil/redator/internal/platform/apperr"
	"github.com/cbrazil/redator/internal/platform/validate"
	"github.com/cbrazil/redator/pkg/pagination"
	"github.com/cbrazil/redator/pkg/slug"
)

// # Contracts & Types

// Generator drafts article content on demand.
//
// Implementations wrap an external text model or templating backend. A nil
// generator disables the draft-assist endpoint without affecting anything
// else in the package.
type Generator interface {
	// Generate produces article body text for a topic.
	//
	// # Parameters
	//   - context: Cancellation and deadline propagation to the backend.
	//   - topic: What the article should be about.
	//   - contextHint: Free-form steering text (tone, audience, outline).
	//
	// # Returns
	//   - The generated body, or an err when the backend fails.
	Generate(context context.Context, topic, contextHint string) (string, error)
}

// Service implements the article lifecycle use cases.
type Service struct {
	repository Repository
	generator  Generator
	logger     *slog.Logger
}

// NewService constructs the article [Service]. The generator may be nil.
func NewService(repository Repository, generator Generator, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		generator:  generator,
		logger:     logger,
	}
}

// # Lifecycle

// CreateInput holds the data required to draft a new article.
type CreateInput struct {
	Title      string
	Slug       string // Optional, derived from Title when empty
	Summary    string
	Content    string
	AuthorID   *int64
	CategoryID *int64
	TagIDs     []int64
}

/*
Create drafts a new article inside a blog.

Description: Articles always start as drafts; publication is an explicit
separate step. The slug is normalized (or derived from the title) and must be
unique within the blog.

Parameters:
  - context: context.Context
  - blogID: int64
  - createdBy: int64
  - input: CreateInput

Returns:
  - *Article: Created entity
  - err: Validation, slug conflict, unknown reference, or storage errors
*/
func (service *Service) Create(context context.Context, blogID, createdBy int64, input CreateInput) (*Article, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	articleSlug := input.Slug
	if articleSlug == "" {
		articleSlug = input.Title
	}
	articleSlug = slug.From(articleSlug)

	article := &Article{
		BlogID:     blogID,
		Title:      input.Title,
		Slug:       articleSlug,
		Summary:    input.Summary,
		Content:    input.Content,
		Status:     StatusDraft,
		CreatedBy:  createdBy,
		AuthorID:   input.AuthorID,
		CategoryID: input.CategoryID,
		TagIDs:     input.TagIDs,
	}

	if err := service.repository.Create(context, article); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "article_created",
		slog.Int64("article_id", article.ID),
		slog.Int64("blog_id", blogID),
		slog.Int64("created_by", createdBy),
	)

	return article, nil
}

// Get returns the article with the given ID inside the blog.
func (service *Service) Get(context context.Context, blogID, articleID int64) (*Article, error) {
	return service.repository.FindByID(context, blogID, articleID)
}

// List returns one page of the blog's articles matching the filter.
func (service *Service) List(context context.Context, blogID int64, filter Filter, params pagination.Params) ([]*Article, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, validate.RequiredError(FieldStatus, "is not a recognised status")
	}
	return service.repository.List(context, blogID, filter, params)
}

// UpdateInput holds the mutable article fields. Nil fields are left
// unchanged; a non-nil TagIDs replaces the tag set wholesale.
type UpdateInput struct {
	Title      *string
	Slug       *string
	Summary    *string
	Content    *string
	AuthorID   *int64
	CategoryID *int64
	TagIDs     []int64
}

/*
Update applies a partial update to an article.

Parameters:
  - context: context.Context
  - blogID: int64
  - articleID: int64
  - input: UpdateInput

Returns:
  - *Article: Updated entity
  - err: Validation, conflict, or storage errors
*/
func (service *Service) Update(context context.Context, blogID, articleID int64, input UpdateInput) (*Article, error) {
	existing, err := service.repository.FindByID(context, blogID, articleID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Slug != nil {
		existing.Slug = slug.From(*input.Slug)
	}
	if input.Summary != nil {
		existing.Summary = *input.Summary
	}
	if input.Content != nil {
		existing.Content = *input.Content
	}
	if input.AuthorID != nil {
		existing.AuthorID = input.AuthorID
	}
	if input.CategoryID != nil {
		existing.CategoryID = input.CategoryID
	}
	existing.TagIDs = input.TagIDs

	validator := &validate.Validator{}
	validator.Required(FieldTitle, existing.Title).
		MaxLen(FieldTitle, existing.Title, 200).
		Slug(FieldSlug, existing.Slug)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, blogID, articleID)
}

// # Publication

/*
Publish makes the article live on the blog.

Parameters:
  - context: context.Context
  - blogID: int64
  - articleID: int64

Returns:
  - err: Not-found or storage errors
*/
func (service *Service) Publish(context context.Context, blogID, articleID int64) error {
	if err := service.repository.SetStatus(context, blogID, articleID, StatusPublished); err != nil {
		return err
	}

	service.logger.InfoContext(context, "article_published",
		slog.Int64("article_id", articleID),
		slog.Int64("blog_id", blogID),
	)

	return nil
}

// Unpublish returns the article to draft state.
func (service *Service) Unpublish(context context.Context, blogID, articleID int64) error {
	return service.repository.SetStatus(context, blogID, articleID, StatusDraft)
}

// Delete removes the article permanently.
func (service *Service) Delete(context context.Context, blogID, articleID int64) error {
	return service.repository.Delete(context, blogID, articleID)
}

// # Draft Assistance

/*
GenerateDraft asks the configured generator for body text and saves the
result as a new draft.

Description: The generated article lands with the topic as its title, ready
for a human edit pass. When no generator backend is configured the operation
is unavailable rather than silently degraded.

Parameters:
  - context: context.Context
  - blogID: int64
  - createdBy: int64
  - topic: string
  - contextHint: string

Returns:
  - *Article: Created draft
  - err: ServiceUnavailable when no generator is wired, validation, backend,
    or storage errors
*/
func (service *Service) GenerateDraft(context context.Context, blogID, createdBy int64, topic, contextHint string) (*Article, error) {
	if service.generator == nil {
		return nil, apperr.ServiceUnavailable("Draft generation is not configured on this instance")
	}

	validator := &validate.Validator{}
	validator.Required(FieldTopic, topic).
		MaxLen(FieldTopic, topic, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	content, err := service.generator.Generate(context, topic, contextHint)
	if err != nil {
		return nil, fmt.Errorf("article_service_generate_failed: %w", err)
	}

	return service.Create(context, blogID, createdBy, CreateInput{
		Title:   topic,
		Content: content,
	})
}

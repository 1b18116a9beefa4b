// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package category

import (
	"context"
	"log/slog"

	"github.com/cbrazil/redator/internal/platform/validate"
	"github.com/cbrazil/redator/pkg/slug"
)

type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// CreateInput holds the data for a new category. An empty Slug is derived
// from Name.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
}

func (service *Service) Create(context context.Context, blogID int64, input CreateInput) (*Category, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	categorySlug := input.Slug
	if categorySlug == "" {
		categorySlug = input.Name
	}

	category := &Category{
		BlogID:      blogID,
		Name:        input.Name,
		Slug:        slug.From(categorySlug),
		Description: input.Description,
	}

	if err := service.repository.Create(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (service *Service) Get(context context.Context, blogID, categoryID int64) (*Category, error) {
	return service.repository.FindByID(context, blogID, categoryID)
}

func (service *Service) List(context context.Context, blogID int64) ([]*Category, error) {
	return service.repository.ListByBlog(context, blogID)
}

// UpdateInput holds the mutable category fields. Nil fields are left
// unchanged.
type UpdateInput struct {
	Name        *string
	Slug        *string
	Description *string
}

func (service *Service) Update(context context.Context, blogID, categoryID int64, input UpdateInput) (*Category, error) {
	existing, err := service.repository.FindByID(context, blogID, categoryID)
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

	validator := &validate.Validator{}
	validator.Required(FieldName, existing.Name).
		MaxLen(FieldName, existing.Name, 100).
		Slug(FieldSlug, existing.Slug)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (service *Service) Delete(context context.Context, blogID, categoryID int64) error {
	if err := service.repository.Delete(context, blogID, categoryID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "category_deleted",
		slog.Int64("category_id", categoryID),
		slog.Int64("blog_id", blogID),
	)

	return nil
}

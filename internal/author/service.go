// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package author

import (
	"context"
	"log/slog"

	"github.com/cbrazil/redator/internal/platform/validate"
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

// CreateInput holds the data for a new byline author.
type CreateInput struct {
	Name     string
	Bio      *string
	ImageURL *string
}

func (service *Service) Create(context context.Context, blogID int64, input CreateInput) (*Author, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	author := &Author{
		BlogID:   blogID,
		Name:     input.Name,
		Bio:      input.Bio,
		ImageURL: input.ImageURL,
	}

	if err := service.repository.Create(context, author); err != nil {
		return nil, err
	}

	return author, nil
}

func (service *Service) Get(context context.Context, blogID, authorID int64) (*Author, error) {
	return service.repository.FindByID(context, blogID, authorID)
}

func (service *Service) List(context context.Context, blogID int64) ([]*Author, error) {
	return service.repository.ListByBlog(context, blogID)
}

// UpdateInput holds the mutable author fields. Nil fields are left
// unchanged.
type UpdateInput struct {
	Name     *string
	Bio      *string
	ImageURL *string
}

func (service *Service) Update(context context.Context, blogID, authorID int64, input UpdateInput) (*Author, error) {
	existing, err := service.repository.FindByID(context, blogID, authorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Bio != nil {
		existing.Bio = input.Bio
	}
	if input.ImageURL != nil {
		existing.ImageURL = input.ImageURL
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, existing.Name).
		MaxLen(FieldName, existing.Name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (service *Service) Delete(context context.Context, blogID, authorID int64) error {
	if err := service.repository.Delete(context, blogID, authorID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "author_deleted",
		slog.Int64("author_id", authorID),
		slog.Int64("blog_id", blogID),
	)

	return nil
}

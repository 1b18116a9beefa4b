// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package tag

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

func (service *Service) Create(context context.Context, blogID int64, name string) (*Tag, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).
		MaxLen(FieldName, name, 50)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tag := &Tag{
		BlogID: blogID,
		Name:   name,
		Slug:   slug.From(name),
	}

	if err := service.repository.Create(context, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

func (service *Service) Get(context context.Context, blogID, tagID int64) (*Tag, error) {
	return service.repository.FindByID(context, blogID, tagID)
}

func (service *Service) List(context context.Context, blogID int64) ([]*Tag, error) {
	return service.repository.ListByBlog(context, blogID)
}

// Rename changes the tag's display name and reslugs it.
func (service *Service) Rename(context context.Context, blogID, tagID int64, name string) (*Tag, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).
		MaxLen(FieldName, name, 50)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	existing, err := service.repository.FindByID(context, blogID, tagID)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Slug = slug.From(name)

	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (service *Service) Delete(context context.Context, blogID, tagID int64) error {
	if err := service.repository.Delete(context, blogID, tagID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "tag_deleted",
		slog.Int64("tag_id", tagID),
		slog.Int64("blog_id", blogID),
	)

	return nil
}

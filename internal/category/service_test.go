// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package category

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrazil/redator/internal/platform/dberr"
	"github.com/cbrazil/redator/pkg/pointer"
)

type categoryKey struct {
	blogID int64
	id     int64
}

type fakeRepository struct {
	categories map[categoryKey]*Category
	nextID     int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{categories: make(map[categoryKey]*Category), nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, category *Category) error {
	category.ID = f.nextID
	f.nextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	f.categories[categoryKey{blogID: category.BlogID, id: category.ID}] = category
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, blogID, id int64) (*Category, error) {
	category, ok := f.categories[categoryKey{blogID: blogID, id: id}]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *category
	return &copied, nil
}

func (f *fakeRepository) ListByBlog(_ context.Context, blogID int64) ([]*Category, error) {
	var matched []*Category
	for key, category := range f.categories {
		if key.blogID == blogID {
			matched = append(matched, category)
		}
	}
	return matched, nil
}

func (f *fakeRepository) Update(_ context.Context, category *Category) error {
	key := categoryKey{blogID: category.BlogID, id: category.ID}
	if _, ok := f.categories[key]; !ok {
		return dberr.ErrNotFound
	}
	f.categories[key] = category
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, blogID, id int64) error {
	key := categoryKey{blogID: blogID, id: id}
	if _, ok := f.categories[key]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.categories, key)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.DiscardHandler))
}

func TestCreateDerivesSlugFromName(t *testing.T) {
	service := newTestService(newFakeRepository())

	created, err := service.Create(context.Background(), 1, CreateInput{Name: "Doces & Sobremesas"})
	require.NoError(t, err)

	assert.Equal(t, "doces-sobremesas", created.Slug)
	assert.Equal(t, int64(1), created.BlogID)
}

func TestCreateRejectsMissingName(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Create(context.Background(), 1, CreateInput{})
	require.Error(t, err)
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	service := newTestService(newFakeRepository())

	created, err := service.Create(context.Background(), 1, CreateInput{
		Name:        "Receitas",
		Description: "descrição antiga",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), 1, created.ID, UpdateInput{
		Description: pointer.To("descrição nova"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Receitas", updated.Name)
	assert.Equal(t, "descrição nova", updated.Description)
	assert.Equal(t, "receitas", updated.Slug)
}

func TestOperationsAreBlogScoped(t *testing.T) {
	service := newTestService(newFakeRepository())

	created, err := service.Create(context.Background(), 1, CreateInput{Name: "Receitas"})
	require.NoError(t, err)

	_, err = service.Get(context.Background(), 2, created.ID)
	require.ErrorIs(t, err, dberr.ErrNotFound)

	err = service.Delete(context.Background(), 2, created.ID)
	require.ErrorIs(t, err, dberr.ErrNotFound)
}

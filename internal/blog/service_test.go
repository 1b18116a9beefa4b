// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package blog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrazil/redator/internal/platform/dberr"
	"github.com/cbrazil/redator/pkg/pagination"
	"github.com/cbrazil/redator/pkg/pointer"
)

// # Test Fixtures

type fakeRepository struct {
	blogs  map[int64]*Blog
	slugs  map[string]int64
	grants map[int64][]int64 // blogID -> userIDs with a grant
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		blogs:  make(map[int64]*Blog),
		slugs:  make(map[string]int64),
		grants: make(map[int64][]int64),
		nextID: 1,
	}
}

func (f *fakeRepository) Create(_ context.Context, blog *Blog) error {
	if _, taken := f.slugs[blog.Slug]; taken {
		return dberr.ErrDuplicate
	}
	blog.ID = f.nextID
	f.nextID++
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt
	f.blogs[blog.ID] = blog
	f.slugs[blog.Slug] = blog.ID
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*Blog, error) {
	blog, ok := f.blogs[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *blog
	return &copied, nil
}

func (f *fakeRepository) ListVisible(_ context.Context, userID int64, all bool, _ pagination.Params) ([]*Blog, int, error) {
	var visible []*Blog
	for _, blog := range f.blogs {
		owned := blog.OwnerID != nil && *blog.OwnerID == userID
		granted := false
		for _, id := range f.grants[blog.ID] {
			if id == userID {
				granted = true
			}
		}
		if all || owned || granted {
			visible = append(visible, blog)
		}
	}
	return visible, len(visible), nil
}

func (f *fakeRepository) Update(_ context.Context, blog *Blog) error {
	existing, ok := f.blogs[blog.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	if other, taken := f.slugs[blog.Slug]; taken && other != blog.ID {
		return dberr.ErrDuplicate
	}
	delete(f.slugs, existing.Slug)
	f.slugs[blog.Slug] = blog.ID
	copied := *blog
	f.blogs[blog.ID] = &copied
	return nil
}

func (f *fakeRepository) UpdateSettings(_ context.Context, blogID int64, settings Settings) error {
	blog, ok := f.blogs[blogID]
	if !ok {
		return dberr.ErrNotFound
	}
	blog.Settings = settings
	return nil
}

func (f *fakeRepository) TransferOwnership(_ context.Context, blogID int64, newOwnerID int64) error {
	blog, ok := f.blogs[blogID]
	if !ok {
		return dberr.ErrNotFound
	}
	blog.OwnerID = &newOwnerID
	var kept []int64
	for _, id := range f.grants[blogID] {
		if id != newOwnerID {
			kept = append(kept, id)
		}
	}
	f.grants[blogID] = kept
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, blogID int64) error {
	blog, ok := f.blogs[blogID]
	if !ok {
		return nil
	}
	delete(f.slugs, blog.Slug)
	delete(f.blogs, blogID)
	delete(f.grants, blogID)
	return nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, slog.New(slog.DiscardHandler))
}

// # Lifecycle

func TestCreateAssignsOwnerAndDefaults(t *testing.T) {
	service := newTestService(newFakeRepository())

	created, err := service.Create(context.Background(), 7, CreateInput{Name: "Diário de Receitas"})

	require.NoError(t, err)
	require.NotNil(t, created.OwnerID)
	assert.Equal(t, int64(7), *created.OwnerID)
	assert.Equal(t, "diario-de-receitas", created.Slug, "slug is derived from the name")
	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, DefaultTheme, created.Settings.Theme)
	assert.Equal(t, DefaultLanguage, created.Settings.Language)
}

func TestCreateRejectsMissingName(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Create(context.Background(), 7, CreateInput{})
	assert.Error(t, err)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Create(context.Background(), 7, CreateInput{Name: "My Blog"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), 8, CreateInput{Name: "My Blog"})
	assert.ErrorIs(t, err, dberr.ErrDuplicate)
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	created, err := service.Create(context.Background(), 7, CreateInput{Name: "My Blog", Description: "original"})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, UpdateInput{
		Name:   pointer.To("Renamed Blog"),
		Status: pointer.To(StatusArchived),
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed Blog", updated.Name)
	assert.Equal(t, StatusArchived, updated.Status)
	assert.Equal(t, "original", updated.Description, "untouched fields are preserved")
	assert.Equal(t, "my-blog", updated.Slug, "slug does not follow a rename")
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	service := newTestService(newFakeRepository())
	created, err := service.Create(context.Background(), 7, CreateInput{Name: "My Blog"})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), created.ID, UpdateInput{
		Status: pointer.To(Status("frozen")),
	})
	assert.Error(t, err)
}

// # Visibility

func TestListVisibility(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	mine, err := service.Create(context.Background(), 1, CreateInput{Name: "Mine"})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), 2, CreateInput{Name: "Theirs"})
	require.NoError(t, err)
	shared, err := service.Create(context.Background(), 2, CreateInput{Name: "Shared"})
	require.NoError(t, err)
	repo.grants[shared.ID] = []int64{1}

	visible, total, err := service.List(context.Background(), 1, false, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	ids := []int64{visible[0].ID, visible[1].ID}
	assert.ElementsMatch(t, []int64{mine.ID, shared.ID}, ids)

	_, total, err = service.List(context.Background(), 1, true, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, total, "masters see every blog")
}

// # Ownership

func TestTransferOwnership(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	created, err := service.Create(context.Background(), 1, CreateInput{Name: "My Blog"})
	require.NoError(t, err)
	repo.grants[created.ID] = []int64{2}

	require.NoError(t, service.TransferOwnership(context.Background(), created.ID, 2))

	after, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, after.OwnerID)
	assert.Equal(t, int64(2), *after.OwnerID)
	assert.Empty(t, repo.grants[created.ID], "the new owner's grant row is cleared")
}

func TestTransferOwnershipRejectsInvalidID(t *testing.T) {
	service := newTestService(newFakeRepository())

	assert.Error(t, service.TransferOwnership(context.Background(), 1, 0))
	assert.Error(t, service.TransferOwnership(context.Background(), 1, -3))
}

func TestDeleteRemovesBlog(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)
	created, err := service.Create(context.Background(), 1, CreateInput{Name: "My Blog"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	_, err = service.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

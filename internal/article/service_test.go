// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrazil/redator/internal/platform/apperr"
	"github.com/cbrazil/redator/internal/platform/dberr"
	"github.com/cbrazil/redator/pkg/pagination"
	"github.com/cbrazil/redator/pkg/pointer"
)

// # Test Fixtures

type articleKey struct {
	blogID int64
	id     int64
}

type fakeRepository struct {
	articles map[articleKey]*Article
	slugs    map[string]articleKey // blog-scoped "blogID/slug" -> key
	nextID   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		articles: make(map[articleKey]*Article),
		slugs:    make(map[string]articleKey),
		nextID:   1,
	}
}

func slugKey(blogID int64, articleSlug string) string {
	return fmt.Sprintf("%d/%s", blogID, articleSlug)
}

func (f *fakeRepository) Create(_ context.Context, article *Article) error {
	if _, taken := f.slugs[slugKey(article.BlogID, article.Slug)]; taken {
		return dberr.ErrDuplicate
	}
	article.ID = f.nextID
	f.nextID++
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	key := articleKey{blogID: article.BlogID, id: article.ID}
	f.articles[key] = article
	f.slugs[slugKey(article.BlogID, article.Slug)] = key
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, blogID, id int64) (*Article, error) {
	article, ok := f.articles[articleKey{blogID: blogID, id: id}]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *article
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, blogID int64, filter Filter, _ pagination.Params) ([]*Article, int, error) {
	var matched []*Article
	for key, article := range f.articles {
		if key.blogID != blogID {
			continue
		}
		if filter.Status != "" && article.Status != filter.Status {
			continue
		}
		if filter.CategoryID != nil &&
			(article.CategoryID == nil || *article.CategoryID != *filter.CategoryID) {
			continue
		}
		matched = append(matched, article)
	}
	return matched, len(matched), nil
}

func (f *fakeRepository) Update(_ context.Context, article *Article) error {
	key := articleKey{blogID: article.BlogID, id: article.ID}
	existing, ok := f.articles[key]
	if !ok {
		return dberr.ErrNotFound
	}
	if existing.Slug != article.Slug {
		if _, taken := f.slugs[slugKey(article.BlogID, article.Slug)]; taken {
			return dberr.ErrDuplicate
		}
		delete(f.slugs, slugKey(article.BlogID, existing.Slug))
		f.slugs[slugKey(article.BlogID, article.Slug)] = key
	}
	article.UpdatedAt = time.Now()
	f.articles[key] = article
	return nil
}

func (f *fakeRepository) SetStatus(_ context.Context, blogID, id int64, status Status) error {
	article, ok := f.articles[articleKey{blogID: blogID, id: id}]
	if !ok {
		return dberr.ErrNotFound
	}
	article.Status = status
	if status == StatusPublished && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, blogID, id int64) error {
	key := articleKey{blogID: blogID, id: id}
	article, ok := f.articles[key]
	if !ok {
		return dberr.ErrNotFound
	}
	delete(f.slugs, slugKey(blogID, article.Slug))
	delete(f.articles, key)
	return nil
}

type fakeGenerator struct {
	content string
	err     error

	lastTopic       string
	lastContextHint string
}

func (f *fakeGenerator) Generate(_ context.Context, topic, contextHint string) (string, error) {
	f.lastTopic = topic
	f.lastContextHint = contextHint
	return f.content, f.err
}

func newTestService(repository Repository, generator Generator) *Service {
	return NewService(repository, generator, slog.New(slog.DiscardHandler))
}

// # Lifecycle

func TestCreateStartsAsDraftWithDerivedSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	created, err := service.Create(context.Background(), 1, 10, CreateInput{
		Title:   "Pão de Queijo Perfeito",
		Content: "Misture tudo.",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, created.Status)
	assert.Equal(t, "pao-de-queijo-perfeito", created.Slug)
	assert.Equal(t, int64(1), created.BlogID)
	assert.Equal(t, int64(10), created.CreatedBy)
	assert.Nil(t, created.PublishedAt)
}

func TestCreateRejectsMissingTitle(t *testing.T) {
	service := newTestService(newFakeRepository(), nil)

	_, err := service.Create(context.Background(), 1, 10, CreateInput{Content: "corpo"})
	require.Error(t, err)
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreateRejectsDuplicateSlugWithinBlog(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	_, err := service.Create(context.Background(), 1, 10, CreateInput{Title: "Receita"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), 1, 10, CreateInput{Title: "Receita"})
	require.ErrorIs(t, err, dberr.ErrDuplicate)

	// Same slug on a different blog is fine.
	_, err = service.Create(context.Background(), 2, 10, CreateInput{Title: "Receita"})
	require.NoError(t, err)
}

func TestGetScopesByBlog(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	created, err := service.Create(context.Background(), 1, 10, CreateInput{Title: "Receita"})
	require.NoError(t, err)

	found, err := service.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.Get(context.Background(), 2, created.ID)
	require.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	created, err := service.Create(context.Background(), 1, 10, CreateInput{
		Title:   "Rascunho",
		Summary: "resumo antigo",
		Content: "corpo antigo",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), 1, created.ID, UpdateInput{
		Title:   pointer.To("Título Final"),
		Content: pointer.To("corpo novo"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Título Final", updated.Title)
	assert.Equal(t, "corpo novo", updated.Content)
	assert.Equal(t, "resumo antigo", updated.Summary)
	// The slug does not silently follow a title change.
	assert.Equal(t, "rascunho", updated.Slug)
}

func TestUpdateRejectsMalformedSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	created, err := service.Create(context.Background(), 1, 10, CreateInput{Title: "Receita"})
	require.NoError(t, err)

	_, err = service.Update(context.Background(), 1, created.ID, UpdateInput{
		Slug: pointer.To("!!!"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	service := newTestService(newFakeRepository(), nil)

	_, _, err := service.List(context.Background(), 1, Filter{Status: "pending"}, pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	draft, err := service.Create(context.Background(), 1, 10, CreateInput{Title: "Rascunho"})
	require.NoError(t, err)
	live, err := service.Create(context.Background(), 1, 10, CreateInput{Title: "Publicado"})
	require.NoError(t, err)
	require.NoError(t, service.Publish(context.Background(), 1, live.ID))

	published, total, err := service.List(context.Background(), 1, Filter{Status: StatusPublished}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, published, 1)
	assert.Equal(t, live.ID, published[0].ID)
	assert.NotEqual(t, draft.ID, published[0].ID)
}

// # Publication

func TestPublishStampsPublicationTimeOnce(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	created, err := service.Create(context.Background(), 1, 10, CreateInput{Title: "Receita"})
	require.NoError(t, err)

	require.NoError(t, service.Publish(context.Background(), 1, created.ID))

	first, err := service.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, StatusPublished, first.Status)

	// Unpublishing keeps the original timestamp; republishing must not
	// overwrite it.
	require.NoError(t, service.Unpublish(context.Background(), 1, created.ID))
	require.NoError(t, service.Publish(context.Background(), 1, created.ID))

	second, err := service.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	require.NotNil(t, second.PublishedAt)
	assert.Equal(t, *first.PublishedAt, *second.PublishedAt)
}

func TestPublishMissingArticleIsNotFound(t *testing.T) {
	service := newTestService(newFakeRepository(), nil)

	err := service.Publish(context.Background(), 1, 999)
	require.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestDeleteFreesSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	created, err := service.Create(context.Background(), 1, 10, CreateInput{Title: "Receita"})
	require.NoError(t, err)
	require.NoError(t, service.Delete(context.Background(), 1, created.ID))

	_, err = service.Get(context.Background(), 1, created.ID)
	require.ErrorIs(t, err, dberr.ErrNotFound)

	_, err = service.Create(context.Background(), 1, 10, CreateInput{Title: "Receita"})
	require.NoError(t, err)
}

// # Draft Assistance

func TestGenerateDraftCreatesDraftFromTopic(t *testing.T) {
	repo := newFakeRepository()
	generator := &fakeGenerator{content: "Texto gerado sobre o tema."}
	service := newTestService(repo, generator)

	created, err := service.GenerateDraft(context.Background(), 1, 10, "Fermentação Natural", "tom informal")
	require.NoError(t, err)

	assert.Equal(t, "Fermentação Natural", created.Title)
	assert.Equal(t, "Texto gerado sobre o tema.", created.Content)
	assert.Equal(t, StatusDraft, created.Status)
	assert.Equal(t, "Fermentação Natural", generator.lastTopic)
	assert.Equal(t, "tom informal", generator.lastContextHint)
}

func TestGenerateDraftWithoutBackendIsUnavailable(t *testing.T) {
	service := newTestService(newFakeRepository(), nil)

	_, err := service.GenerateDraft(context.Background(), 1, 10, "Fermentação Natural", "")
	require.Error(t, err)
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperr.As(err).Code)
}

func TestGenerateDraftRequiresTopic(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakeGenerator{content: "x"})

	_, err := service.GenerateDraft(context.Background(), 1, 10, "", "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestGenerateDraftPropagatesBackendFailure(t *testing.T) {
	backendErr := errors.New("model timeout")
	service := newTestService(newFakeRepository(), &fakeGenerator{err: backendErr})

	_, err := service.GenerateDraft(context.Background(), 1, 10, "Fermentação Natural", "")
	require.ErrorIs(t, err, backendErr)
}

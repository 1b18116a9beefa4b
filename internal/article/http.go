// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package article

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cbrazil/redator/internal/access"
	requestutil "github.com/cbrazil/redator/internal/platform/request"
	"github.com/cbrazil/redator/internal/platform/respond"
	"github.com/cbrazil/redator/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the article HTTP endpoints.
//
// Routes are mounted under /blogs/{blogID}/articles; the blogID parameter is
// inherited from the parent route. Editors read and write drafts; publishing
// and deletion are admin operations.
type Handler struct {
	articleService *Service
	accessService  *access.Service
}

// NewHandler constructs a new [Handler] with its service dependencies.
func NewHandler(articleService *Service, accessService *access.Service) *Handler {
	return &Handler{articleService: articleService, accessService: accessService}
}

// Routes returns a [chi.Router] with the article endpoints.
//
// # Endpoints
//   - GET    /                      : Lists articles (editor).
//   - POST   /                      : Creates a draft (editor).
//   - POST   /generate              : Generates a draft from a topic (editor).
//   - GET    /{articleID}           : Reads an article (editor).
//   - PUT    /{articleID}           : Updates an article (editor).
//   - POST   /{articleID}/publish   : Publishes (admin).
//   - POST   /{articleID}/unpublish : Returns to draft (admin).
//   - DELETE /{articleID}           : Deletes (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Post("/generate", handler.generate)

	router.Route("/{articleID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Put("/", handler.update)
		r.Post("/publish", handler.publish)
		r.Post("/unpublish", handler.unpublish)
		r.Delete("/", handler.remove)
	})

	return router
}

// # Request Payloads

type createArticleRequest struct {
	Title      string  `json:"title"`
	Slug       string  `json:"slug,omitempty"`
	Summary    string  `json:"summary,omitempty"`
	Content    string  `json:"content"`
	AuthorID   *int64  `json:"author_id,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
	TagIDs     []int64 `json:"tag_ids,omitempty"`
}

type updateArticleRequest struct {
	Title      *string `json:"title,omitempty"`
	Slug       *string `json:"slug,omitempty"`
	Summary    *string `json:"summary,omitempty"`
	Content    *string `json:"content,omitempty"`
	AuthorID   *int64  `json:"author_id,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
	TagIDs     []int64 `json:"tag_ids,omitempty"`
}

type generateRequest struct {
	Topic   string `json:"topic"`
	Context string `json:"context,omitempty"`
}

/*
List returns the blog's articles, filtered and paginated.

GET /api/v1/blogs/{blogID}/articles?status=&category_id=&q=

Response:
  - 200: []Article with pagination metadata
  - 403: Caller has no role on this blog
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	filter := Filter{
		Status: Status(request.URL.Query().Get("status")),
		Query:  request.URL.Query().Get("q"),
	}
	if raw := request.URL.Query().Get("category_id"); raw != "" {
		if categoryID, err := strconv.ParseInt(raw, 10, 64); err == nil && categoryID > 0 {
			filter.CategoryID = &categoryID
		}
	}

	params := pagination.FromRequest(request)
	articles, total, err := handler.articleService.List(request.Context(), blogID, filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create drafts a new article.

POST /api/v1/blogs/{blogID}/articles

Request:
  - Body: createArticleRequest

Response:
  - 201: Article: Created draft
  - 409: Slug already used in this blog
  - 422: Unknown author, category, or tag reference
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.articleService.Create(request.Context(), blogID, userID, CreateInput{
		Title:      input.Title,
		Slug:       input.Slug,
		Summary:    input.Summary,
		Content:    input.Content,
		AuthorID:   input.AuthorID,
		CategoryID: input.CategoryID,
		TagIDs:     input.TagIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
Generate drafts an article from a topic using the configured backend.

POST /api/v1/blogs/{blogID}/articles/generate

Request:
  - Body: generateRequest (Topic, Context?)

Response:
  - 201: Article: Generated draft
  - 503: No generation backend configured
*/
func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input generateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.articleService.GenerateDraft(request.Context(), blogID, userID, input.Topic, input.Context)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, draft)
}

/*
Get reads a single article with its tags.

GET /api/v1/blogs/{blogID}/articles/{articleID}

Response:
  - 200: Article
  - 404: Article not in this blog
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	articleID, err := requestutil.Int64Param(request, "articleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Get(request.Context(), blogID, articleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
Update applies a partial update to an article.

PUT /api/v1/blogs/{blogID}/articles/{articleID}

Request:
  - Body: updateArticleRequest (any subset of fields; tag_ids replaces the set)

Response:
  - 200: Article: Updated entity
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	articleID, err := requestutil.Int64Param(request, "articleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateArticleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.articleService.Update(request.Context(), blogID, articleID, UpdateInput{
		Title:      input.Title,
		Slug:       input.Slug,
		Summary:    input.Summary,
		Content:    input.Content,
		AuthorID:   input.AuthorID,
		CategoryID: input.CategoryID,
		TagIDs:     input.TagIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
Publish makes the article live.

POST /api/v1/blogs/{blogID}/articles/{articleID}/publish

Response:
  - 204: Article published
  - 403: Caller is below admin on this blog
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	handler.setStatus(writer, request, true)
}

/*
Unpublish returns the article to draft state.

POST /api/v1/blogs/{blogID}/articles/{articleID}/unpublish

Response:
  - 204: Article back in draft
  - 403: Caller is below admin on this blog
*/
func (handler *Handler) unpublish(writer http.ResponseWriter, request *http.Request) {
	handler.setStatus(writer, request, false)
}

func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request, publish bool) {
	blogID, ok := handler.authorize(writer, request, access.RoleAdmin)
	if !ok {
		return
	}

	articleID, err := requestutil.Int64Param(request, "articleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if publish {
		err = handler.articleService.Publish(request.Context(), blogID, articleID)
	} else {
		err = handler.articleService.Unpublish(request.Context(), blogID, articleID)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Remove deletes the article permanently.

DELETE /api/v1/blogs/{blogID}/articles/{articleID}

Response:
  - 204: Article deleted
  - 403: Caller is below admin on this blog
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleAdmin)
	if !ok {
		return
	}

	articleID, err := requestutil.Int64Param(request, "articleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.articleService.Delete(request.Context(), blogID, articleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// authorize resolves the blogID parameter and runs the access decision at the
// required role, writing the error response itself on denial.
func (handler *Handler) authorize(writer http.ResponseWriter, request *http.Request, required access.Role) (int64, bool) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return 0, false
	}

	blogID, err := requestutil.Int64Param(request, "blogID")
	if err != nil {
		respond.Error(writer, request, err)
		return 0, false
	}

	if _, err := handler.accessService.Authorize(request.Context(), access.PrincipalFromClaims(claims), blogID, required); err != nil {
		respond.Error(writer, request, err)
		return 0, false
	}

	return blogID, true
}

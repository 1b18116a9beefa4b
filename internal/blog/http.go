// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cbrazil/redator/internal/access"
	"github.com/cbrazil/redator/internal/platform/middleware"
	requestutil "github.com/cbrazil/redator/internal/platform/request"
	"github.com/cbrazil/redator/internal/platform/respond"
	"github.com/cbrazil/redator/internal/platform/sec"
	"github.com/cbrazil/redator/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the blog lifecycle HTTP endpoints.
//
// Every blog-scoped route resolves the caller through the access decision
// procedure before touching the blog service.
type Handler struct {
	blogService   *Service
	accessService *access.Service
}

// NewHandler constructs a new [Handler] with its service dependencies.
func NewHandler(blogService *Service, accessService *access.Service) *Handler {
	return &Handler{blogService: blogService, accessService: accessService}
}

// Routes returns a [chi.Router] with the blog endpoints.
//
// Nested mounts are applied inside the /{blogID} subtree so that per-blog
// resources (articles, taxonomies, collaborator grants) inherit the blogID
// parameter.
//
// # Endpoints
//   - GET    /                   : Lists blogs visible to the caller.
//   - POST   /                   : Creates a blog (caller becomes owner).
//   - GET    /{blogID}           : Reads a blog (editor).
//   - PUT    /{blogID}           : Updates metadata (admin).
//   - DELETE /{blogID}           : Deletes the blog (owner).
//   - PUT    /{blogID}/settings  : Replaces presentation settings (owner).
//   - POST   /{blogID}/transfer  : Transfers ownership (owner).
func (handler *Handler) Routes(nested ...func(chi.Router)) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{blogID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Put("/", handler.update)
		r.Delete("/", handler.remove)
		r.Put("/settings", handler.updateSettings)
		r.Post("/transfer", handler.transferOwnership)

		for _, mount := range nested {
			mount(r)
		}
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Domain      string `json:"domain,omitempty"`
}

type updateRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Domain      *string `json:"domain,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type settingsRequest struct {
	Theme          string `json:"theme"`
	Language       string `json:"language"`
	SEOTitle       string `json:"seo_title,omitempty"`
	SEODescription string `json:"seo_description,omitempty"`
}

type transferRequest struct {
	NewOwnerID int64 `json:"new_owner_id"`
}

/*
List returns the blogs visible to the caller.

GET /api/v1/blogs

Description: Owners and collaborators see their blogs; platform masters see
every blog on the instance.

Response:
  - 200: []Blog with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	all := handler.accessService.IsSuperAdmin(claims.Email) ||
		sec.AccountRole(claims.Role) == sec.RoleMaster

	params := pagination.FromRequest(request)
	blogs, total, err := handler.blogService.List(request.Context(), claims.UserID, all, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, blogs, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create opens a new blog owned by the caller.

POST /api/v1/blogs

Request:
  - Body: createRequest (Name, Slug?, Description?, Domain?)

Response:
  - 201: Blog: Created blog
  - 400: Validation failure
  - 409: Slug already taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.blogService.Create(request.Context(), userID, CreateInput{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Domain:      input.Domain,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
Get reads a single blog.

GET /api/v1/blogs/{blogID}

Response:
  - 200: Blog
  - 403: Caller has no role on this blog
  - 404: Blog does not exist
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	found, err := handler.blogService.Get(request.Context(), blogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
Update applies a partial metadata update.

PUT /api/v1/blogs/{blogID}

Request:
  - Body: updateRequest (any subset of Name, Slug, Description, Domain, Status)

Response:
  - 200: Blog: Updated blog
  - 403: Caller is below admin on this blog
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleAdmin)
	if !ok {
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var status *Status
	if input.Status != nil {
		s := Status(*input.Status)
		status = &s
	}

	updated, err := handler.blogService.Update(request.Context(), blogID, UpdateInput{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Domain:      input.Domain,
		Status:      status,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
UpdateSettings replaces the presentation settings block.

PUT /api/v1/blogs/{blogID}/settings

Request:
  - Body: settingsRequest (Theme, Language, SEOTitle?, SEODescription?)

Response:
  - 200: Settings applied
  - 403: Caller is not the blog's owner
*/
func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleOwner)
	if !ok {
		return
	}

	var input settingsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings := Settings{
		Theme:          input.Theme,
		Language:       input.Language,
		SEOTitle:       input.SEOTitle,
		SEODescription: input.SEODescription,
	}

	if err := handler.blogService.UpdateSettings(request.Context(), blogID, settings); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

/*
TransferOwnership hands the blog to another user.

POST /api/v1/blogs/{blogID}/transfer

Request:
  - Body: transferRequest (NewOwnerID)

Response:
  - 204: Ownership transferred
  - 403: Caller is not the blog's owner
  - 422: New owner does not exist
*/
func (handler *Handler) transferOwnership(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleOwner)
	if !ok {
		return
	}

	var input transferRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.blogService.TransferOwnership(request.Context(), blogID, input.NewOwnerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Remove deletes the blog and everything scoped to it.

DELETE /api/v1/blogs/{blogID}

Response:
  - 204: Blog deleted
  - 403: Caller is not the blog's owner
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleOwner)
	if !ok {
		return
	}

	if err := handler.blogService.Delete(request.Context(), blogID); err != nil {
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

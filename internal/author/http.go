// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package author

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cbrazil/redator/internal/access"
	requestutil "github.com/cbrazil/redator/internal/platform/request"
	"github.com/cbrazil/redator/internal/platform/respond"
)

// Handler implements the byline author HTTP endpoints.
//
// Routes are mounted under /blogs/{blogID}/authors; the blogID parameter is
// inherited from the parent route.
type Handler struct {
	authorService *Service
	accessService *access.Service
}

func NewHandler(authorService *Service, accessService *access.Service) *Handler {
	return &Handler{authorService: authorService, accessService: accessService}
}

// Routes returns a [chi.Router] with the author endpoints.
//
// # Endpoints
//   - GET    /            : Lists authors (editor).
//   - POST   /            : Creates an author (editor).
//   - GET    /{authorID}  : Reads an author (editor).
//   - PUT    /{authorID}  : Updates an author (editor).
//   - DELETE /{authorID}  : Deletes an author (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{authorID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Put("/", handler.update)
		r.Delete("/", handler.remove)
	})

	return router
}

type createAuthorRequest struct {
	Name     string  `json:"name"`
	Bio      *string `json:"bio,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

type updateAuthorRequest struct {
	Name     *string `json:"name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	authors, err := handler.authorService.List(request.Context(), blogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, authors)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	var payload createAuthorRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.authorService.Create(request.Context(), blogID, CreateInput{
		Name:     payload.Name,
		Bio:      payload.Bio,
		ImageURL: payload.ImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	authorID, err := requestutil.Int64Param(request, "authorID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.authorService.Get(request.Context(), blogID, authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	authorID, err := requestutil.Int64Param(request, "authorID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateAuthorRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.authorService.Update(request.Context(), blogID, authorID, UpdateInput{
		Name:     payload.Name,
		Bio:      payload.Bio,
		ImageURL: payload.ImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleAdmin)
	if !ok {
		return
	}

	authorID, err := requestutil.Int64Param(request, "authorID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authorService.Delete(request.Context(), blogID, authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// authorize resolves the blogID parameter and runs the access decision at
// the required role, writing the error response itself on denial.
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

// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cbrazil/redator/internal/access"
	requestutil "github.com/cbrazil/redator/internal/platform/request"
	"github.com/cbrazil/redator/internal/platform/respond"
)

// Handler implements the category HTTP endpoints.
//
// Routes are mounted under /blogs/{blogID}/categories; the blogID parameter
// is inherited from the parent route.
type Handler struct {
	categoryService *Service
	accessService   *access.Service
}

func NewHandler(categoryService *Service, accessService *access.Service) *Handler {
	return &Handler{categoryService: categoryService, accessService: accessService}
}

// Routes returns a [chi.Router] with the category endpoints.
//
// # Endpoints
//   - GET    /              : Lists categories (editor).
//   - POST   /              : Creates a category (editor).
//   - GET    /{categoryID}  : Reads a category (editor).
//   - PUT    /{categoryID}  : Updates a category (editor).
//   - DELETE /{categoryID}  : Deletes a category (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{categoryID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Put("/", handler.update)
		r.Delete("/", handler.remove)
	})

	return router
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	categories, err := handler.categoryService.List(request.Context(), blogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	var payload createCategoryRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.categoryService.Create(request.Context(), blogID, CreateInput{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
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

	categoryID, err := requestutil.Int64Param(request, "categoryID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.categoryService.Get(request.Context(), blogID, categoryID)
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

	categoryID, err := requestutil.Int64Param(request, "categoryID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateCategoryRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.categoryService.Update(request.Context(), blogID, categoryID, UpdateInput{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
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

	categoryID, err := requestutil.Int64Param(request, "categoryID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.categoryService.Delete(request.Context(), blogID, categoryID); err != nil {
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

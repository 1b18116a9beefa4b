// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cbrazil/redator/internal/access"
	requestutil "github.com/cbrazil/redator/internal/platform/request"
	"github.com/cbrazil/redator/internal/platform/respond"
)

// Handler implements the tag HTTP endpoints.
//
// Routes are mounted under /blogs/{blogID}/tags; the blogID parameter is
// inherited from the parent route.
type Handler struct {
	tagService    *Service
	accessService *access.Service
}

func NewHandler(tagService *Service, accessService *access.Service) *Handler {
	return &Handler{tagService: tagService, accessService: accessService}
}

// Routes returns a [chi.Router] with the tag endpoints.
//
// # Endpoints
//   - GET    /         : Lists tags (editor).
//   - POST   /         : Creates a tag (editor).
//   - GET    /{tagID}  : Reads a tag (editor).
//   - PUT    /{tagID}  : Renames a tag (editor).
//   - DELETE /{tagID}  : Deletes a tag (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{tagID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Put("/", handler.rename)
		r.Delete("/", handler.remove)
	})

	return router
}

type tagRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	tags, err := handler.tagService.List(request.Context(), blogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	var payload tagRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.tagService.Create(request.Context(), blogID, payload.Name)
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

	tagID, err := requestutil.Int64Param(request, "tagID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.tagService.Get(request.Context(), blogID, tagID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler) rename(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleEditor)
	if !ok {
		return
	}

	tagID, err := requestutil.Int64Param(request, "tagID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload tagRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	renamed, err := handler.tagService.Rename(request.Context(), blogID, tagID, payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, renamed)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	blogID, ok := handler.authorize(writer, request, access.RoleAdmin)
	if !ok {
		return
	}

	tagID, err := requestutil.Int64Param(request, "tagID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.tagService.Delete(request.Context(), blogID, tagID); err != nil {
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

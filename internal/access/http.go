// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package access

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/cbrazil/redator/internal/platform/request"
	"github.com/cbrazil/redator/internal/platform/respond"
)

// Handler implements the collaborator management endpoints for a blog.
//
// Routes are mounted under /blogs/{blogID}/access by the server composition
// root; the blogID parameter is inherited from the parent route.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the collaborator endpoints.
//
// # Endpoints
//   - GET    /          : Lists grants on the blog (admin).
//   - PUT    /          : Grants or overwrites a role (owner).
//   - DELETE /{userID}  : Revokes a grant (owner).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listGrants)
	router.Put("/", handler.grant)
	router.Delete("/{userID}", handler.revoke)

	return router
}

// # Request Payloads

type grantRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

/*
listGrants returns the blog's collaborator list.

GET /api/v1/blogs/{blogID}/access

Response:
  - 200: []Grant with denormalized account display fields
  - 403: Caller is below admin on this blog
*/
func (handler *Handler) listGrants(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	blogID, err := requestutil.Int64Param(request, "blogID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Authorize(request.Context(), PrincipalFromClaims(claims), blogID, RoleAdmin); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grants, err := handler.service.ListGrants(request.Context(), blogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, grants)
}

/*
grant assigns a role to a user on the blog (upsert).

PUT /api/v1/blogs/{blogID}/access

Request:
  - Body: grantRequest (UserID, Role — editor or admin only)

Response:
  - 200: Grant: The resulting grant row
  - 400: Validation failure (including non-grantable roles)
  - 403: Caller is not the blog's owner
*/
func (handler *Handler) grant(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	blogID, err := requestutil.Int64Param(request, "blogID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input grantRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Managing collaborators is an owner-level operation.
	if _, err := handler.service.Authorize(request.Context(), PrincipalFromClaims(claims), blogID, RoleOwner); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grant, err := handler.service.Grant(request.Context(), input.UserID, blogID, Role(input.Role))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, grant)
}

/*
revoke removes a user's grant on the blog. Idempotent.

DELETE /api/v1/blogs/{blogID}/access/{userID}

Response:
  - 204: Grant removed (or was already absent)
  - 403: Caller is not the blog's owner
*/
func (handler *Handler) revoke(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	blogID, err := requestutil.Int64Param(request, "blogID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.Int64Param(request, "userID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Authorize(request.Context(), PrincipalFromClaims(claims), blogID, RoleOwner); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Revoke(request.Context(), userID, blogID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

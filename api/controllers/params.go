package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/easybody/easybody-backend/api/middleware"
	"github.com/easybody/easybody-backend/api/validators"
	"github.com/easybody/easybody-backend/internal/offers"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/pagination"
)

// actorID extracts the authenticated user id from the request context.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// actorFromRequest builds the acting identity from the request context.
func actorFromRequest(r *http.Request) (offers.Actor, error) {
	id, err := actorID(r)
	if err != nil {
		return offers.Actor{}, err
	}
	role := enums.UserRole(middleware.RoleFromContext(r.Context()))
	if !role.IsValid() {
		return offers.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "role context missing")
	}
	return offers.Actor{ID: id, Role: role}, nil
}

// optionalActor returns nil for anonymous requests.
func optionalActor(r *http.Request) (*offers.Actor, error) {
	if middleware.UserIDFromContext(r.Context()) == "" {
		return nil, nil
	}
	actor, err := actorFromRequest(r)
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// pageParams reads the standard page/size query parameters.
func pageParams(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 0, 1<<20)
	if err != nil {
		return pagination.Params{}, err
	}
	size, err := validators.ParseQueryInt(r, "size", pagination.DefaultSize, 1, pagination.MaxSize)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Size: size}, nil
}

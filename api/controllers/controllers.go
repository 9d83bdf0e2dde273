// Package controllers contains the HTTP handlers for the BUDUN Sigorta
// API. Handlers are plain factories so tests can wire them with stub
// services.
package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/budunsigorta/backend/api/middleware"
	"github.com/budunsigorta/backend/api/responses"
	pkgerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// requireActor pulls the authenticated actor from the request context,
// writing a 401 when no actor is present.
func requireActor(logg *logger.Logger, w http.ResponseWriter, r *http.Request) (tenant.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
		return tenant.Actor{}, false
	}
	return actor, true
}

// parseUUIDParam reads a chi URL parameter and parses it as a UUID.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
	}
	return id, nil
}

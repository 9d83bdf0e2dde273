package controllers

import (
	"net/http"

	"github.com/budunsigorta/backend/api/middleware"
	"github.com/budunsigorta/backend/api/responses"
	"github.com/budunsigorta/backend/pkg/logger"
)

// PublicPing answers without authentication. Useful as a reachability
// probe for the login screen.
func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"message": "pong"})
	}
}

// PrivatePing echoes the authenticated actor back to the caller.
func PrivatePing(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		payload := map[string]any{
			"message":  "pong",
			"username": actor.Username,
			"is_admin": actor.IsAdmin,
		}
		if actor.CompanyID != nil {
			payload["company_id"] = actor.CompanyID.String()
		}
		responses.WriteSuccess(w, payload)
	}
}

// AdminPing verifies the admin middleware chain end to end.
func AdminPing(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"message":   "pong",
			"username":  actor.Username,
			"access_id": middleware.AccessIDFromContext(r.Context()),
		})
	}
}

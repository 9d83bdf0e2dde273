package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/budunsigorta/backend/api/responses"
	pkgerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
)

// PermissionChecker reports whether a user holds a named permission flag.
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID uuid.UUID, name string) (bool, error)
}

// RequirePermission rejects authenticated callers that lack the named
// permission. Platform admins always pass. Must run after Auth.
func RequirePermission(checker PermissionChecker, name string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			if actor.IsAdmin {
				next.ServeHTTP(w, r)
				return
			}
			if checker == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "permission check unavailable"))
				return
			}
			allowed, err := checker.HasPermission(r.Context(), actor.UserID, name)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check permission"))
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package controllers

import (
	"net/http"

	"github.com/budunsigorta/backend/api/responses"
	"github.com/budunsigorta/backend/internal/dashboard"
	pkgerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
)

// DashboardSummary returns the landing-page counters for the actor's
// visible scope.
func DashboardSummary(svc *dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}

		summary, err := svc.Summarize(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

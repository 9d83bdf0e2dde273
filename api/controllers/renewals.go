package controllers

import (
	"net/http"

	"github.com/budunsigorta/backend/api/responses"
	"github.com/budunsigorta/backend/api/validators"
	"github.com/budunsigorta/backend/internal/renewals"
	pkgerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
)

const (
	defaultRenewalWindowDays = 30
	maxRenewalWindowDays     = 365
)

// RenewalsDue lists policies expiring within the requested window.
// The window is controlled by the optional ?days query parameter.
func RenewalsDue(svc *renewals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "renewal service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}

		days, err := validators.ParseQueryInt(r, "days", defaultRenewalWindowDays, 0, maxRenewalWindowDays)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.Due(r.Context(), actor, days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// RenewalsOverdue lists policies whose end date has already passed.
func RenewalsOverdue(svc *renewals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "renewal service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}

		rows, err := svc.Overdue(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// RenewalStatusGet reports the follow-up state of a policy's renewal.
func RenewalStatusGet(svc *renewals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "renewal service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}

		policyID, err := parseUUIDParam(r, "policyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := svc.StatusFor(r.Context(), actor, policyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": status})
	}
}

// RenewalStatusUpdate records the follow-up state for a policy's
// renewal.
func RenewalStatusUpdate(svc *renewals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "renewal service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}

		policyID, err := parseUUIDParam(r, "policyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req renewals.SetStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetStatus(r.Context(), actor, policyID, req.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "renewal status updated"})
	}
}

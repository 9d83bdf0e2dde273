package controllers

import (
	"net/http"

	"github.com/budunsigorta/backend/api/responses"
	"github.com/budunsigorta/backend/api/validators"
	"github.com/budunsigorta/backend/internal/crossselling"
	pkgerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
)

// CrossSellingList returns the opportunities visible to the actor,
// highest priority first.
func CrossSellingList(svc *crossselling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cross-selling service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		rows, err := svc.List(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CrossSellingCreate records a manual opportunity.
func CrossSellingCreate(svc *crossselling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cross-selling service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		var req crossselling.UpsertOpportunityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.Create(r.Context(), actor, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// CrossSellingUpdate replaces an opportunity's fields.
func CrossSellingUpdate(svc *crossselling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cross-selling service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		id, err := parseUUIDParam(r, "opportunityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req crossselling.UpsertOpportunityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), actor, id, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// CrossSellingStatusUpdate moves an opportunity to a new follow-up
// state.
func CrossSellingStatusUpdate(svc *crossselling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cross-selling service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		id, err := parseUUIDParam(r, "opportunityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req crossselling.SetStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.SetStatus(r.Context(), actor, id, req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// CrossSellingDelete removes an opportunity.
func CrossSellingDelete(svc *crossselling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cross-selling service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		id, err := parseUUIDParam(r, "opportunityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "opportunity deleted"})
	}
}

// CrossSellingGenerate runs the suggestion generator on demand and
// reports how many opportunities it created. Admin only.
func CrossSellingGenerate(gen *crossselling.Generator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gen == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cross-selling generator unavailable"))
			return
		}
		created, err := gen.Run(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"created": created})
	}
}

// CrossSellingReminderCreate schedules a follow-up reminder on an
// opportunity.
func CrossSellingReminderCreate(svc *crossselling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cross-selling service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		id, err := parseUUIDParam(r, "opportunityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req crossselling.CreateReminderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.AddReminder(r.Context(), actor, id, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// CrossSellingReminderList returns an opportunity's reminders, soonest
// first.
func CrossSellingReminderList(svc *crossselling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cross-selling service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		id, err := parseUUIDParam(r, "opportunityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListReminders(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// CrossSellingReminderComplete marks a reminder as handled.
func CrossSellingReminderComplete(svc *crossselling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cross-selling service unavailable"))
			return
		}
		actor, ok := requireActor(logg, w, r)
		if !ok {
			return
		}
		opportunityID, err := parseUUIDParam(r, "opportunityId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reminderID, err := parseUUIDParam(r, "reminderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.CompleteReminder(r.Context(), actor, opportunityID, reminderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "reminder completed"})
	}
}

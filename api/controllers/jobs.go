package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printdeskhq/printdesk-backend/api/responses"
	"github.com/printdeskhq/printdesk-backend/api/validators"
	"github.com/printdeskhq/printdesk-backend/internal/assignments"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
)

type cancelJobPayload struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelJob cancels a single pending job and reverts its line item assignment.
func CancelJob(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignments service unavailable"))
			return
		}

		jobID, err := parseIDParam(r, "jobId")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid job id"))
			return
		}

		payload := cancelJobPayload{}
		if r.Body != nil && r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		result, err := svc.CancelJob(ctx, jobID, sanitizeReason(payload.Reason))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CancelQuoteJobs cancels every active job on a quote. All-or-nothing: a
// single accepted job rejects the batch.
func CancelQuoteJobs(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignments service unavailable"))
			return
		}

		quoteID, err := parseIDParam(r, "quoteId")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote id"))
			return
		}

		payload := cancelJobPayload{}
		if r.Body != nil && r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		result, err := svc.CancelJobsByQuote(ctx, quoteID, sanitizeReason(payload.Reason))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CorrectJob applies a back-office correction to a supplier job.
func CorrectJob(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignments service unavailable"))
			return
		}

		jobID, err := parseIDParam(r, "jobId")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid job id"))
			return
		}

		var payload assignments.JobCorrectionInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.CorrectJob(ctx, jobID, payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"updated": true})
	}
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(chi.URLParam(r, name)))
}

const maxCancelReasonLen = 500

func sanitizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}
	cleaned := validators.SanitizeString(*reason, maxCancelReasonLen)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

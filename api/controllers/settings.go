package controllers

import (
	"net/http"

	"github.com/printdeskhq/printdesk-backend/api/responses"
	"github.com/printdeskhq/printdesk-backend/api/validators"
	"github.com/printdeskhq/printdesk-backend/internal/settings"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
)

// GetScoringWeights returns the stored scoring weights, falling back to the
// defaults when nothing has been saved.
func GetScoringWeights(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		weights, err := svc.ScoringWeights(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, weights)
	}
}

// UpdateScoringWeights replaces the stored scoring weights.
func UpdateScoringWeights(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var payload settings.Weights
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.UpdateScoringWeights(ctx, payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printdeskhq/printdesk-backend/api/responses"
	"github.com/printdeskhq/printdesk-backend/api/validators"
	"github.com/printdeskhq/printdesk-backend/internal/recommendations"
	"github.com/printdeskhq/printdesk-backend/internal/settings"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
)

type recommendationsPayload struct {
	Items   []recommendations.ItemInput `json:"items" validate:"required,min=1,dive"`
	Weights *settings.Weights           `json:"weights,omitempty"`
}

// QuoteRecommendations scores suppliers per category for a quote's line items.
func QuoteRecommendations(svc recommendations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recommendations service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "quoteId"))
		quoteID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote id"))
			return
		}

		var payload recommendationsPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.RecommendationsByCategory(ctx, recommendations.RecommendationInput{
			QuoteID: quoteID,
			Items:   payload.Items,
			Weights: payload.Weights,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"categories": result})
	}
}

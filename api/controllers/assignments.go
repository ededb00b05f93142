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

type assignSupplierPayload struct {
	SupplierID uuid.UUID                    `json:"supplierId" validate:"required"`
	Items      []assignments.AssignmentItem `json:"items" validate:"required,min=1,dive"`
}

// AssignSupplier creates supplier jobs for a batch of line items in one quote.
// The batch is atomic: one bad item fails the whole request.
func AssignSupplier(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignments service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "quoteId"))
		quoteID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid quote id"))
			return
		}

		var payload assignSupplierPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.AssignSupplierToCategory(ctx, assignments.AssignInput{
			QuoteID:    quoteID,
			SupplierID: payload.SupplierID,
			Items:      payload.Items,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/printdeskhq/printdesk-backend/api/middleware"
	"github.com/printdeskhq/printdesk-backend/api/responses"
	"github.com/printdeskhq/printdesk-backend/api/validators"
	"github.com/printdeskhq/printdesk-backend/internal/suppliers"
	pkgerrors "github.com/printdeskhq/printdesk-backend/pkg/errors"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
)

type publishPricesPayload struct {
	Prices []suppliers.PriceInput `json:"prices" validate:"required,min=1,dive"`
}

// PublishSupplierPrices upserts the authenticated supplier's price sheet.
func PublishSupplierPrices(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "suppliers service unavailable"))
			return
		}

		supplierID, err := supplierFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload publishPricesPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.PublishPrices(ctx, supplierID, payload.Prices); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"published": len(payload.Prices)})
	}
}

// ListSupplierPrices returns the authenticated supplier's current price sheet.
func ListSupplierPrices(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "suppliers service unavailable"))
			return
		}

		supplierID, err := supplierFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		prices, err := svc.ListPrices(ctx, supplierID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"prices": prices})
	}
}

func supplierFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

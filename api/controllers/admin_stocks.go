package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/api/responses"
	"github.com/karikadai/karikadai-backend/api/validators"
	stocksvc "github.com/karikadai/karikadai-backend/internal/stocks"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

// AdminStocksList returns the current stock levels.
func AdminStocksList(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stocks service unavailable"))
			return
		}

		views, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

type stockUpdateRequest struct {
	QuantityKg *decimal.Decimal `json:"quantity_kg"`
	OpeningKg  *decimal.Decimal `json:"opening_kg"`
}

// AdminStockUpdate adjusts today's remaining quantity and/or the opening
// level the nightly reset restores.
func AdminStockUpdate(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stocks service unavailable"))
			return
		}

		itemType, err := itemTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload stockUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.QuantityKg == nil && payload.OpeningKg == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity_kg or opening_kg required"))
			return
		}

		if payload.OpeningKg != nil {
			if err := svc.SetOpening(r.Context(), itemType, *payload.OpeningKg); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if payload.QuantityKg != nil {
			if err := svc.SetQuantity(r.Context(), itemType, *payload.QuantityKg); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		views, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

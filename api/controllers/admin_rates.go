package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/api/responses"
	"github.com/karikadai/karikadai-backend/api/validators"
	ratesvc "github.com/karikadai/karikadai-backend/internal/rates"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

func itemTypeParam(r *http.Request) (enums.ItemType, error) {
	itemType, err := enums.ParseItemType(chi.URLParam(r, "itemType"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item type")
	}
	return itemType, nil
}

type rateUpdateRequest struct {
	Price decimal.Decimal `json:"price"`
}

// AdminRateUpdate sets today's price for an item type, creating the rate
// row when none exists yet.
func AdminRateUpdate(svc ratesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		itemType, err := itemTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload rateUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdatePrice(r.Context(), itemType, payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

type rateToggleRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// AdminRateToggle flips whether the stored rate is served or the fallback
// price takes over.
func AdminRateToggle(svc ratesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		itemType, err := itemTypeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload rateToggleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetActive(r.Context(), itemType, *payload.IsActive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

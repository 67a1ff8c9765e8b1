package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karikadai/karikadai-backend/api/responses"
	"github.com/karikadai/karikadai-backend/api/validators"
	cartsvc "github.com/karikadai/karikadai-backend/internal/cart"
	ratesvc "github.com/karikadai/karikadai-backend/internal/rates"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

const cartTokenHeader = "X-Cart-Token"

// cartToken reads the caller's cart token, minting one when absent. The
// token is always echoed back so the storefront can persist it.
func cartToken(w http.ResponseWriter, r *http.Request) string {
	token := r.Header.Get(cartTokenHeader)
	if token == "" {
		token = uuid.NewString()
	}
	w.Header().Set(cartTokenHeader, token)
	return token
}

// CartGet returns the caller's cart, empty when nothing is stored yet.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token := cartToken(w, r)
		view, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

type cartAddRequest struct {
	ItemType string          `json:"item_type" validate:"required"`
	CutType  string          `json:"cut_type" validate:"required"`
	Unit     string          `json:"unit" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

func (p cartAddRequest) toItem(price decimal.Decimal) (cartsvc.Item, error) {
	itemType, err := enums.ParseItemType(p.ItemType)
	if err != nil {
		return cartsvc.Item{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item type")
	}
	unit, err := enums.ParseQuantityUnit(p.Unit)
	if err != nil {
		return cartsvc.Item{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
	}
	return cartsvc.Item{
		ItemType: itemType,
		CutType:  p.CutType,
		Quantity: p.Quantity,
		Unit:     unit,
		Price:    price,
	}, nil
}

// CartAdd appends a line to the cart. The line is priced server-side from
// the current rate so the client never supplies a price.
func CartAdd(svc cartsvc.Service, rates ratesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || rates == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token := cartToken(w, r)

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemType, err := enums.ParseItemType(payload.ItemType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item type"))
			return
		}

		price, err := rates.PriceFor(r.Context(), itemType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := payload.toItem(price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Add(r.Context(), token, item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// CartRemove drops the line identified by its dedupe key.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token := cartToken(w, r)
		key := chi.URLParam(r, "key")
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item key required"))
			return
		}

		view, err := svc.Remove(r.Context(), token, key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		token := cartToken(w, r)
		if err := svc.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

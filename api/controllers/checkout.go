package controllers

import (
	"net/http"

	"github.com/karikadai/karikadai-backend/api/responses"
	"github.com/karikadai/karikadai-backend/api/validators"
	checkoutsvc "github.com/karikadai/karikadai-backend/internal/checkout"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerName string  `json:"customer_name" validate:"required"`
	Phone        string  `json:"phone" validate:"required"`
	PickupDate   string  `json:"pickup_date" validate:"required"`
	PickupTime   string  `json:"pickup_time" validate:"required"`
	Notes        *string `json:"notes"`
}

// Checkout turns the caller's cart into an order and returns the WhatsApp
// handoff alongside the order reference.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token := r.Header.Get(cartTokenHeader)
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart token required"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), checkoutsvc.Input{
			CartToken:    token,
			CustomerName: payload.CustomerName,
			Phone:        payload.Phone,
			PickupDate:   payload.PickupDate,
			PickupTime:   payload.PickupTime,
			Notes:        payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

package controllers

import (
	"net/http"

	"github.com/karikadai/karikadai-backend/api/responses"
	ratesvc "github.com/karikadai/karikadai-backend/internal/rates"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

// Rates returns today's price per item type, substituting the configured
// fallback where no active rate exists.
func Rates(svc ratesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		views, err := svc.CurrentRates(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

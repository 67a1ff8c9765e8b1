package controllers

import (
	"net/http"

	"github.com/karikadai/karikadai-backend/api/responses"
	"github.com/karikadai/karikadai-backend/api/validators"
	settingsvc "github.com/karikadai/karikadai-backend/internal/settings"
	"github.com/karikadai/karikadai-backend/pkg/enums"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
)

// shopSettingsResponse adds the composer's cut-style list to the stored
// settings so the storefront renders both from one call.
type shopSettingsResponse struct {
	*settingsvc.View
	CutTypes []enums.CutType `json:"cut_types"`
}

// ShopSettings returns the public storefront settings.
func ShopSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		view, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, shopSettingsResponse{View: view, CutTypes: enums.PresentedCutTypes()})
	}
}

type settingsUpdateRequest struct {
	ShopName        *string  `json:"shop_name"`
	ShopPhone       *string  `json:"shop_phone"`
	PickupTimeSlots []string `json:"pickup_time_slots"`
	IsOpen          *bool    `json:"is_open"`
	BannerText      *string  `json:"banner_text"`
}

// AdminSettingsUpdate changes the shop profile. Omitted fields keep their
// current value.
func AdminSettingsUpdate(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var payload settingsUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Update(r.Context(), settingsvc.UpdateInput{
			ShopName:        payload.ShopName,
			ShopPhone:       payload.ShopPhone,
			PickupTimeSlots: payload.PickupTimeSlots,
			IsOpen:          payload.IsOpen,
			BannerText:      payload.BannerText,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

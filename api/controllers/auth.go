package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/karikadai/karikadai-backend/api/responses"
	"github.com/karikadai/karikadai-backend/api/validators"
	pkgauth "github.com/karikadai/karikadai-backend/pkg/auth"
	"github.com/karikadai/karikadai-backend/pkg/config"
	pkgerrors "github.com/karikadai/karikadai-backend/pkg/errors"
	"github.com/karikadai/karikadai-backend/pkg/logger"
	"github.com/karikadai/karikadai-backend/pkg/security"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdminLogin verifies the staff credential and mints an access token.
func AdminLogin(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.Username != cfg.Admin.Username {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}

		ok, err := security.VerifyPassword(payload.Password, cfg.Admin.PasswordHash)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credentials"))
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}

		now := time.Now()
		token, err := pkgauth.MintAccessToken(cfg.JWT, now, pkgauth.AccessTokenPayload{
			Username: payload.Username,
			JTI:      uuid.NewString(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token"))
			return
		}

		responses.WriteSuccess(w, loginResponse{
			Token:     token,
			ExpiresAt: now.Add(time.Duration(cfg.JWT.ExpirationMinutes) * time.Minute),
		})
	}
}

package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/taglinkbr/taglink-backend/api/middleware"
	"github.com/taglinkbr/taglink-backend/api/responses"
	"github.com/taglinkbr/taglink-backend/api/validators"
	activationsvc "github.com/taglinkbr/taglink-backend/internal/activation"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
	"github.com/taglinkbr/taglink-backend/pkg/logger"
)

type activationRequest struct {
	QRCode      string `json:"qr_code" validate:"required"`
	ProductType string `json:"product_type" validate:"required"`
}

// ClaimProduct binds the scanned product to the authenticated account.
func ClaimProduct(svc activationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activation service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		var payload activationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// The service rejects unknown product types itself; parsing here only
		// normalizes the value, so the raw string passes through on error.
		productType, _ := enums.ParseActivatableProductType(payload.ProductType)
		if productType == "" {
			productType = enums.ActivatableProductType(payload.ProductType)
		}

		result, err := svc.Claim(r.Context(), payload.QRCode, productType, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ValidateActivation is the public pre-flight executed before signup.
func ValidateActivation(svc activationsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activation service unavailable"))
			return
		}

		var payload activationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productType, _ := enums.ParseActivatableProductType(payload.ProductType)
		if productType == "" {
			productType = enums.ActivatableProductType(payload.ProductType)
		}

		result, err := svc.Validate(r.Context(), payload.QRCode, productType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

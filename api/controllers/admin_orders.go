package controllers

import (
	"net/http"

	"github.com/taglinkbr/taglink-backend/api/responses"
	"github.com/taglinkbr/taglink-backend/api/validators"
	fulfillmentsvc "github.com/taglinkbr/taglink-backend/internal/fulfillment"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
	"github.com/taglinkbr/taglink-backend/pkg/logger"
)

type advanceOrderStatusRequest struct {
	Status       string  `json:"status" validate:"required"`
	TrackingCode *string `json:"tracking_code" validate:"omitempty,min=1"`
}

// AdminAdvanceOrderStatus moves an order forward through its fulfillment flow.
func AdminAdvanceOrderStatus(svc fulfillmentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fulfillment service unavailable"))
			return
		}

		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload advanceOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
			return
		}

		tracking, err := svc.AdvanceStatus(r.Context(), fulfillmentsvc.AdvanceStatusInput{
			OrderID:      orderID,
			To:           status,
			TrackingCode: payload.TrackingCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tracking)
	}
}

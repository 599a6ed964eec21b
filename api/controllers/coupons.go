package controllers

import (
	"net/http"
	"time"

	"github.com/taglinkbr/taglink-backend/api/middleware"
	"github.com/taglinkbr/taglink-backend/api/responses"
	"github.com/taglinkbr/taglink-backend/api/validators"
	couponsvc "github.com/taglinkbr/taglink-backend/internal/coupons"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
	"github.com/taglinkbr/taglink-backend/pkg/logger"
)

type validateCouponRequest struct {
	Code       string  `json:"code" validate:"required"`
	OrderTotal float64 `json:"order_total" validate:"required,gt=0"`
}

// ValidateCoupon prices a coupon against the caller's order total.
func ValidateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		var payload validateCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())

		result, err := svc.ValidateAndPrice(r.Context(), userID, payload.Code, payload.OrderTotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type createCouponRequest struct {
	Code          string     `json:"code" validate:"required"`
	Description   string     `json:"description"`
	DiscountType  string     `json:"discount_type" validate:"required"`
	DiscountValue float64    `json:"discount_value" validate:"required,gt=0"`
	MinOrderValue *float64   `json:"min_order_value" validate:"omitempty,gt=0"`
	MaxDiscount   *float64   `json:"max_discount" validate:"omitempty,gt=0"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	MaxUses       *int       `json:"max_uses" validate:"omitempty,gt=0"`
}

// AdminCreateCoupon registers a new coupon code.
func AdminCreateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		var payload createCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		discountType, err := enums.ParseDiscountType(payload.DiscountType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type"))
			return
		}

		coupon, err := svc.Create(r.Context(), couponsvc.CreateCouponInput{
			Code:          payload.Code,
			Description:   payload.Description,
			DiscountType:  discountType,
			DiscountValue: payload.DiscountValue,
			MinOrderValue: payload.MinOrderValue,
			MaxDiscount:   payload.MaxDiscount,
			ValidFrom:     payload.ValidFrom,
			ValidUntil:    payload.ValidUntil,
			MaxUses:       payload.MaxUses,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

// AdminListCoupons lists all coupons including inactive ones.
func AdminListCoupons(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		coupons, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, coupons)
	}
}

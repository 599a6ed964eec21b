package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taglinkbr/taglink-backend/pkg/db"
	"github.com/taglinkbr/taglink-backend/pkg/db/models"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
	"github.com/taglinkbr/taglink-backend/pkg/metrics"
	"gorm.io/gorm"
)

// CouponResult carries the coupon's public fields plus the computed discount.
// Usage counters and raw validity timestamps are never exposed.
type CouponResult struct {
	ID             uuid.UUID          `json:"id"`
	Code           string             `json:"code"`
	Description    string             `json:"description"`
	DiscountType   enums.DiscountType `json:"discount_type"`
	DiscountValue  float64            `json:"discount_value"`
	MinOrderValue  *float64           `json:"min_order_value,omitempty"`
	MaxDiscount    *float64           `json:"max_discount,omitempty"`
	DiscountAmount float64            `json:"discount_amount"`
}

// CreateCouponInput captures the admin payload for a new coupon.
type CreateCouponInput struct {
	Code          string
	Description   string
	DiscountType  enums.DiscountType
	DiscountValue float64
	MinOrderValue *float64
	MaxDiscount   *float64
	ValidFrom     *time.Time
	ValidUntil    *time.Time
	MaxUses       *int
}

// Service exposes coupon validation and administration.
type Service interface {
	ValidateAndPrice(ctx context.Context, userID uuid.UUID, code string, orderTotal float64) (*CouponResult, error)
	IncrementUsage(ctx context.Context, couponID uuid.UUID) error
	Create(ctx context.Context, input CreateCouponInput) (*models.Coupon, error)
	List(ctx context.Context) ([]models.Coupon, error)
}

type service struct {
	repo Repository
	ops  *metrics.OpsMetrics
	now  func() time.Time
}

// NewService builds a coupon service backed by the provided repository.
func NewService(repo Repository, ops *metrics.OpsMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{repo: repo, ops: ops, now: time.Now}, nil
}

var hundred = decimal.NewFromInt(100)

// ValidateAndPrice checks the coupon against the order context and computes
// the discount. Validation alone has no side effects; current_uses moves only
// at order finalization.
func (s *service) ValidateAndPrice(ctx context.Context, userID uuid.UUID, code string, orderTotal float64) (*CouponResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if orderTotal <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total must be positive")
	}

	coupon, err := s.repo.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.ops.IncCouponValidation("not_found")
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found or inactive")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	now := s.now()
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		s.ops.IncCouponValidation("not_yet_valid")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon is not valid yet")
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		s.ops.IncCouponValidation("expired")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon has expired")
	}
	if coupon.MaxUses != nil && coupon.CurrentUses >= *coupon.MaxUses {
		s.ops.IncCouponValidation("exhausted")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon usage limit reached")
	}
	if coupon.MinOrderValue != nil && orderTotal < *coupon.MinOrderValue {
		s.ops.IncCouponValidation("below_minimum")
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("order total is below the coupon minimum of %.2f", *coupon.MinOrderValue))
	}

	discount := computeDiscount(coupon, orderTotal)

	s.ops.IncCouponValidation("ok")
	amount, _ := discount.Float64()
	return &CouponResult{
		ID:             coupon.ID,
		Code:           coupon.Code,
		Description:    coupon.Description,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		MinOrderValue:  coupon.MinOrderValue,
		MaxDiscount:    coupon.MaxDiscount,
		DiscountAmount: amount,
	}, nil
}

func computeDiscount(coupon *models.Coupon, orderTotal float64) decimal.Decimal {
	total := decimal.NewFromFloat(orderTotal)

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case enums.DiscountTypePercentage:
		discount = total.Mul(decimal.NewFromFloat(coupon.DiscountValue)).Div(hundred)
	default:
		discount = decimal.NewFromFloat(coupon.DiscountValue)
	}

	if coupon.MaxDiscount != nil {
		if capAt := decimal.NewFromFloat(*coupon.MaxDiscount); discount.GreaterThan(capAt) {
			discount = capAt
		}
	}
	if discount.GreaterThan(total) {
		discount = total
	}

	return discount.Round(2)
}

// IncrementUsage consumes one use at order finalization time.
func (s *service) IncrementUsage(ctx context.Context, couponID uuid.UUID) error {
	if couponID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon id is required")
	}
	ok, err := s.repo.IncrementUsage(ctx, couponID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment coupon usage")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeConflict, "coupon usage limit reached")
	}
	return nil
}

func (s *service) Create(ctx context.Context, input CreateCouponInput) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if !input.DiscountType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid discount type")
	}
	if input.DiscountValue <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount value must be positive")
	}
	if input.DiscountType == enums.DiscountTypePercentage && input.DiscountValue > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "percentage discounts are expressed 0-100")
	}
	if input.ValidFrom != nil && input.ValidUntil != nil && input.ValidUntil.Before(*input.ValidFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validity window end precedes start")
	}

	coupon := &models.Coupon{
		ID:            uuid.New(),
		Code:          code,
		Description:   strings.TrimSpace(input.Description),
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		MinOrderValue: input.MinOrderValue,
		MaxDiscount:   input.MaxDiscount,
		ValidFrom:     input.ValidFrom,
		ValidUntil:    input.ValidUntil,
		MaxUses:       input.MaxUses,
		IsActive:      true,
	}

	created, err := s.repo.Create(ctx, coupon)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	return created, nil
}

func (s *service) List(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return coupons, nil
}

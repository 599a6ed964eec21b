package coupons

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taglinkbr/taglink-backend/pkg/db/models"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
)

type stubCouponRepo struct {
	coupon      *models.Coupon
	findErr     error
	created     *models.Coupon
	createErr   error
	incremented bool
	incrErr     error
}

func (s *stubCouponRepo) FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.coupon == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.coupon, nil
}

func (s *stubCouponRepo) Create(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = coupon
	return coupon, nil
}

func (s *stubCouponRepo) List(ctx context.Context) ([]models.Coupon, error) {
	if s.coupon == nil {
		return nil, nil
	}
	return []models.Coupon{*s.coupon}, nil
}

func (s *stubCouponRepo) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	if s.incrErr != nil {
		return false, s.incrErr
	}
	return !s.incremented, nil
}

func newTestCouponService(t *testing.T, repo Repository) *service {
	t.Helper()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc.(*service)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestValidateAndPricePercentageWithCap(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{coupon: &models.Coupon{
		ID:            uuid.New(),
		Code:          "SAVE10",
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: 10,
		MinOrderValue: floatPtr(50),
		MaxDiscount:   floatPtr(20),
		IsActive:      true,
	}}
	svc := newTestCouponService(t, repo)

	result, err := svc.ValidateAndPrice(context.Background(), uuid.New(), "SAVE10", 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 10% of 300 is 30, capped at 20.
	if result.DiscountAmount != 20 {
		t.Fatalf("expected discount 20, got %v", result.DiscountAmount)
	}
}

func TestValidateAndPriceBelowMinimum(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{coupon: &models.Coupon{
		ID:            uuid.New(),
		Code:          "SAVE10",
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: 10,
		MinOrderValue: floatPtr(50),
		IsActive:      true,
	}}
	svc := newTestCouponService(t, repo)

	_, err := svc.ValidateAndPrice(context.Background(), uuid.New(), "SAVE10", 40)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(typed.Message(), "50.00") {
		t.Fatalf("expected minimum in message, got %q", typed.Message())
	}
}

func TestValidateAndPriceFixedNeverExceedsTotal(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{coupon: &models.Coupon{
		ID:            uuid.New(),
		Code:          "FLAT50",
		DiscountType:  enums.DiscountTypeFixed,
		DiscountValue: 50,
		IsActive:      true,
	}}
	svc := newTestCouponService(t, repo)

	result, err := svc.ValidateAndPrice(context.Background(), uuid.New(), "FLAT50", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DiscountAmount != 30 {
		t.Fatalf("expected discount clamped to 30, got %v", result.DiscountAmount)
	}
}

func TestValidateAndPriceNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestCouponService(t, &stubCouponRepo{})

	_, err := svc.ValidateAndPrice(context.Background(), uuid.New(), "MISSING", 100)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if typed.Message() != "coupon not found or inactive" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestValidateAndPriceWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	cases := []struct {
		name    string
		coupon  models.Coupon
		message string
	}{
		{
			name: "not yet valid",
			coupon: models.Coupon{
				Code:          "SOON",
				DiscountType:  enums.DiscountTypeFixed,
				DiscountValue: 5,
				ValidFrom:     &future,
				IsActive:      true,
			},
			message: "coupon is not valid yet",
		},
		{
			name: "expired",
			coupon: models.Coupon{
				Code:          "LATE",
				DiscountType:  enums.DiscountTypeFixed,
				DiscountValue: 5,
				ValidUntil:    &past,
				IsActive:      true,
			},
			message: "coupon has expired",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			coupon := tc.coupon
			svc := newTestCouponService(t, &stubCouponRepo{coupon: &coupon})
			svc.now = func() time.Time { return now }

			_, err := svc.ValidateAndPrice(context.Background(), uuid.New(), coupon.Code, 100)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeConflict {
				t.Fatalf("expected conflict, got %v", err)
			}
			if typed.Message() != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, typed.Message())
			}
		})
	}
}

func TestValidateAndPriceUsageExhausted(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{coupon: &models.Coupon{
		Code:          "BURNT",
		DiscountType:  enums.DiscountTypeFixed,
		DiscountValue: 5,
		MaxUses:       intPtr(3),
		CurrentUses:   3,
		IsActive:      true,
	}}
	svc := newTestCouponService(t, repo)

	_, err := svc.ValidateAndPrice(context.Background(), uuid.New(), "BURNT", 100)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if typed.Message() != "coupon usage limit reached" {
		t.Fatalf("unexpected message: %q", typed.Message())
	}
}

func TestValidateAndPriceRequiresAuth(t *testing.T) {
	t.Parallel()

	svc := newTestCouponService(t, &stubCouponRepo{})

	_, err := svc.ValidateAndPrice(context.Background(), uuid.Nil, "SAVE10", 100)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestValidateAndPriceRoundsHalfUp(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{coupon: &models.Coupon{
		Code:          "ODD",
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: 10,
		IsActive:      true,
	}}
	svc := newTestCouponService(t, repo)

	result, err := svc.ValidateAndPrice(context.Background(), uuid.New(), "ODD", 33.33)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DiscountAmount != 3.33 {
		t.Fatalf("expected 3.33, got %v", result.DiscountAmount)
	}
}

func TestCreateCanonicalizesCode(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{}
	svc := newTestCouponService(t, repo)

	created, err := svc.Create(context.Background(), CreateCouponInput{
		Code:          "  save10 ",
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Code != "SAVE10" {
		t.Fatalf("expected canonical code, got %q", created.Code)
	}
	if !created.IsActive {
		t.Fatal("expected new coupon to be active")
	}
}

func TestCreateRejectsPercentageOver100(t *testing.T) {
	t.Parallel()

	svc := newTestCouponService(t, &stubCouponRepo{})

	_, err := svc.Create(context.Background(), CreateCouponInput{
		Code:          "TOOMUCH",
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: 120,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIncrementUsageCapRace(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{incremented: true}
	svc := newTestCouponService(t, repo)

	err := svc.IncrementUsage(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict when cap re-check fails, got %v", err)
	}
}

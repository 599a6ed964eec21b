package activation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	pkgerrors "github.com/taglinkbr/taglink-backend/pkg/errors"
	"github.com/taglinkbr/taglink-backend/pkg/metrics"
	"gorm.io/gorm"
)

// ClaimResult reports the product bound by a successful claim.
type ClaimResult struct {
	ProductID   uuid.UUID                    `json:"product_id"`
	ProductType enums.ActivatableProductType `json:"product_type"`
}

// ValidationResult is the read-only pre-flight answer used before collecting
// signup details.
type ValidationResult struct {
	Valid       bool                         `json:"valid"`
	ProductID   uuid.UUID                    `json:"product_id,omitempty"`
	ProductType enums.ActivatableProductType `json:"product_type,omitempty"`
	QRCode      string                       `json:"qr_code,omitempty"`
}

// Service binds physical products to user accounts.
type Service interface {
	Claim(ctx context.Context, qrCode string, productType enums.ActivatableProductType, userID uuid.UUID) (*ClaimResult, error)
	Validate(ctx context.Context, qrCode string, productType enums.ActivatableProductType) (*ValidationResult, error)
}

type service struct {
	repo Repository
	ops  *metrics.OpsMetrics
}

// NewService builds an activation service backed by the provided repository.
func NewService(repo Repository, ops *metrics.OpsMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("activation repository required")
	}
	return &service{repo: repo, ops: ops}, nil
}

// Claim activates the product for userID. The commit is a single conditional
// write; losing the race to another claimant is reported as a conflict even
// when the pre-check read saw the product unclaimed.
func (s *service) Claim(ctx context.Context, qrCode string, productType enums.ActivatableProductType, userID uuid.UUID) (*ClaimResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if strings.TrimSpace(qrCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activation code is required")
	}
	if !productType.IsValid() {
		s.ops.IncClaimAttempt("invalid_type")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product type")
	}

	product, err := s.repo.FindByQRCode(ctx, productType, qrCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.ops.IncClaimAttempt("not_found")
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if product.IsActivated && product.UserID != nil {
		if *product.UserID == userID {
			s.ops.IncClaimAttempt("already_claimed_by_self")
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already activated by you")
		}
		s.ops.IncClaimAttempt("already_claimed_by_other")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already activated by another account")
	}

	claimed, err := s.repo.ClaimIfUnclaimed(ctx, productType, product.ID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim product")
	}
	if !claimed {
		// Race lost: another claim landed between the read and the write.
		s.ops.IncClaimAttempt("already_claimed_by_other")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already activated by another account")
	}

	s.ops.IncClaimAttempt("ok")
	return &ClaimResult{ProductID: product.ID, ProductType: productType}, nil
}

// Validate performs the lookup and activation-state check without mutating.
func (s *service) Validate(ctx context.Context, qrCode string, productType enums.ActivatableProductType) (*ValidationResult, error) {
	if strings.TrimSpace(qrCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activation code is required")
	}
	if !productType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product type")
	}

	product, err := s.repo.FindByQRCode(ctx, productType, qrCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if product.IsActivated {
		return &ValidationResult{Valid: false, ProductID: product.ID, ProductType: productType, QRCode: product.QRCode}, nil
	}
	return &ValidationResult{Valid: true, ProductID: product.ID, ProductType: productType, QRCode: product.QRCode}, nil
}

package activation

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/taglinkbr/taglink-backend/pkg/db/models"
	"github.com/taglinkbr/taglink-backend/pkg/enums"
	"gorm.io/gorm"
)

// Product is the activation-relevant slice of a pet tag or business display.
type Product struct {
	ID          uuid.UUID
	QRCode      string
	ProductType enums.ActivatableProductType
	IsActivated bool
	UserID      *uuid.UUID
}

// Repository looks up activatable products and performs the claim commit.
type Repository interface {
	FindByQRCode(ctx context.Context, productType enums.ActivatableProductType, qrCode string) (*Product, error)
	// ClaimIfUnclaimed sets is_activated and user_id in a single conditional
	// update scoped to rows whose user_id is still null, and reports whether
	// a row was claimed.
	ClaimIfUnclaimed(ctx context.Context, productType enums.ActivatableProductType, id uuid.UUID, userID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an activation repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByQRCode(ctx context.Context, productType enums.ActivatableProductType, qrCode string) (*Product, error) {
	code := strings.TrimSpace(qrCode)
	switch productType {
	case enums.ProductTypePetTag:
		var tag models.PetTag
		if err := r.db.WithContext(ctx).Where("qr_code = ?", code).First(&tag).Error; err != nil {
			return nil, err
		}
		return &Product{
			ID:          tag.ID,
			QRCode:      tag.QRCode,
			ProductType: productType,
			IsActivated: tag.IsActivated,
			UserID:      tag.UserID,
		}, nil
	case enums.ProductTypeBusinessDisplay:
		var display models.BusinessDisplay
		if err := r.db.WithContext(ctx).Where("qr_code = ?", code).First(&display).Error; err != nil {
			return nil, err
		}
		return &Product{
			ID:          display.ID,
			QRCode:      display.QRCode,
			ProductType: productType,
			IsActivated: display.IsActivated,
			UserID:      display.UserID,
		}, nil
	default:
		return nil, gorm.ErrRecordNotFound
	}
}

func (r *repository) ClaimIfUnclaimed(ctx context.Context, productType enums.ActivatableProductType, id uuid.UUID, userID uuid.UUID) (bool, error) {
	var model any
	switch productType {
	case enums.ProductTypePetTag:
		model = &models.PetTag{}
	case enums.ProductTypeBusinessDisplay:
		model = &models.BusinessDisplay{}
	default:
		return false, gorm.ErrRecordNotFound
	}

	res := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND user_id IS NULL", id).
		Updates(map[string]any{
			"is_activated": true,
			"user_id":      userID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

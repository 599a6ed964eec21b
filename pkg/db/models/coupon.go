package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taglinkbr/taglink-backend/pkg/enums"
)

// Coupon is a checkout discount rule. Codes are stored canonicalized to
// uppercase and matched exactly.
type Coupon struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string             `gorm:"column:code;not null;uniqueIndex"`
	Description   string             `gorm:"column:description;not null;default:''"`
	DiscountType  enums.DiscountType `gorm:"column:discount_type;not null"`
	DiscountValue float64            `gorm:"column:discount_value;type:numeric(10,2);not null"`
	MinOrderValue *float64           `gorm:"column:min_order_value;type:numeric(10,2)"`
	MaxDiscount   *float64           `gorm:"column:max_discount;type:numeric(10,2)"`
	ValidFrom     *time.Time         `gorm:"column:valid_from"`
	ValidUntil    *time.Time         `gorm:"column:valid_until"`
	MaxUses       *int               `gorm:"column:max_uses"`
	CurrentUses   int                `gorm:"column:current_uses;not null;default:0"`
	IsActive      bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

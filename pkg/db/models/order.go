package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taglinkbr/taglink-backend/pkg/enums"
)

// Order is created at checkout and mutated by payment webhooks and
// fulfillment staff until it reaches delivered or cancelled.
type Order struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          *uuid.UUID           `gorm:"column:user_id;type:uuid;index"`
	TotalAmount     float64              `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Status          enums.OrderStatus    `gorm:"column:status;not null;default:'pending'"`
	PaymentMethod   *enums.PaymentMethod `gorm:"column:payment_method"`
	PaymentURL      *string              `gorm:"column:payment_url"`
	ShippingName    *string              `gorm:"column:shipping_name"`
	ShippingAddress *string              `gorm:"column:shipping_address"`
	TrackingCode    *string              `gorm:"column:tracking_code"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DisplayArts     []DisplayArt         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// HasCustomArt reports whether any line requires a customer-designed artwork,
// which selects the customization fulfillment flow.
func (o Order) HasCustomArt() bool {
	for _, item := range o.Items {
		if item.RequiresCustomArt {
			return true
		}
	}
	return false
}

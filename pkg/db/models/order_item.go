package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots a purchased product line at checkout time.
type OrderItem struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductName       string    `gorm:"column:product_name;not null"`
	ProductType       string    `gorm:"column:product_type;not null"`
	Quantity          int       `gorm:"column:quantity;not null"`
	UnitPrice         float64   `gorm:"column:unit_price;type:numeric(10,2);not null"`
	RequiresCustomArt bool      `gorm:"column:requires_custom_art;not null;default:false"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

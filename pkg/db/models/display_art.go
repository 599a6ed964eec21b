package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taglinkbr/taglink-backend/pkg/enums"
)

// DisplayArt is the customer-designed artwork for a business display line.
// The art editor surface is keyed by this record's ID.
type DisplayArt struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	OrderItemID *uuid.UUID      `gorm:"column:order_item_id;type:uuid"`
	Status      enums.ArtStatus `gorm:"column:status;not null;default:'draft'"`
	ArtworkURL  *string         `gorm:"column:artwork_url"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

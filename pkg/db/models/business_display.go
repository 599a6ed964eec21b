package models

import (
	"time"

	"github.com/google/uuid"
)

// BusinessDisplay is a physical QR-coded counter display that routes scans to
// a business bio page once claimed.
type BusinessDisplay struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QRCode       string     `gorm:"column:qr_code;not null;uniqueIndex"`
	IsActivated  bool       `gorm:"column:is_activated;not null;default:false"`
	UserID       *uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	BusinessName *string    `gorm:"column:business_name"`
	BioSlug      *string    `gorm:"column:bio_slug"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

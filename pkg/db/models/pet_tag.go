package models

import (
	"time"

	"github.com/google/uuid"
)

// PetTag is a physical QR-coded tag. It is provisioned at manufacturing time
// and claimed at most once; owner contact columns are only exposed publicly
// while lost mode is on.
type PetTag struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QRCode      string     `gorm:"column:qr_code;not null;uniqueIndex"`
	IsActivated bool       `gorm:"column:is_activated;not null;default:false"`
	UserID      *uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	PetName     *string    `gorm:"column:pet_name"`
	Breed       *string    `gorm:"column:breed"`
	PhotoURL    *string    `gorm:"column:photo_url"`
	LostMode    bool       `gorm:"column:lost_mode;not null;default:false"`
	OwnerName   *string    `gorm:"column:owner_name"`
	Phone       *string    `gorm:"column:phone"`
	Whatsapp    *string    `gorm:"column:whatsapp"`
	Address     *string    `gorm:"column:address"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

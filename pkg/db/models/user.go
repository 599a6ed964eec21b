package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/taglinkbr/taglink-backend/pkg/enums"
)

// User mirrors the account record managed by the auth collaborator. Only the
// columns this backend reads are mapped.
type User struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Email     string         `gorm:"column:email;not null;uniqueIndex"`
	FullName  *string        `gorm:"column:full_name"`
	Role      enums.UserRole `gorm:"column:role;not null;default:'customer'"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

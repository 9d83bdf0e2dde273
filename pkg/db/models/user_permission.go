package models

import (
	"time"

	"github.com/google/uuid"
)

// UserPermission is a single name→bool grant. The permission set is
// open-ended; role templates write known names but callers may store others.
type UserPermission struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_permission_name"`
	PermissionName  string    `gorm:"column:permission_name;type:text;not null;uniqueIndex:idx_user_permission_name"`
	PermissionValue bool      `gorm:"column:permission_value;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Salesperson represents a roster entry. Users with the policies_add
// permission appear alongside these in the combined directory.
type Salesperson struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name      string     `gorm:"column:name;type:text;not null"`
	Active    bool       `gorm:"column:active;not null;default:true"`
	CompanyID *uuid.UUID `gorm:"column:company_id;type:uuid;index"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

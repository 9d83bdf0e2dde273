package models

import (
	"time"

	"github.com/google/uuid"
)

// InsuranceCompany represents an insurer whose policies agencies sell.
// Distinct from Company, which is the agency tenant.
type InsuranceCompany struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null;uniqueIndex"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

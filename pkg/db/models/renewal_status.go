package models

import (
	"time"

	"github.com/google/uuid"
)

// RenewalStatus tracks the renewal follow-up state of a single policy.
// One row per policy; writes upsert by policy id.
type RenewalStatus struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PolicyID  uuid.UUID `gorm:"column:policy_id;type:uuid;not null;uniqueIndex"`
	Status    string    `gorm:"column:status;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

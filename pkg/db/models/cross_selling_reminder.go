package models

import (
	"time"

	"github.com/google/uuid"
)

// CrossSellingReminder represents a follow-up scheduled for an opportunity.
type CrossSellingReminder struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CrossSellingID uuid.UUID `gorm:"column:cross_selling_id;type:uuid;not null;index"`
	ReminderDate   time.Time `gorm:"column:reminder_date;type:date;not null"`
	ReminderType   string    `gorm:"column:reminder_type;type:text"`
	Notes          string    `gorm:"column:notes;type:text"`
	Completed      bool      `gorm:"column:completed;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

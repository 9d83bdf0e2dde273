package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountEntry represents a bookkeeping transaction tied to a policy.
type AccountEntry struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	PolicyID        *uuid.UUID      `gorm:"column:policy_id;type:uuid"`
	TransactionType string          `gorm:"column:transaction_type;type:text;not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Description     string          `gorm:"column:description;type:text"`
	TransactionDate time.Time       `gorm:"column:transaction_date;type:date;not null"`
	CompanyID       *uuid.UUID      `gorm:"column:company_id;type:uuid;index"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Policy represents an issued insurance policy row.
type Policy struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CustomerName   string          `gorm:"column:customer_name;type:text;not null"`
	CustomerTCVKN  string          `gorm:"column:customer_tc_vkn;type:text"`
	Plate          string          `gorm:"column:plate;type:text"`
	DocSerial      string          `gorm:"column:doc_serial;type:text"`
	Note           string          `gorm:"column:note;type:text"`
	Premium        decimal.Decimal `gorm:"column:premium;type:numeric(12,2);not null"`
	ProductID      *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	SalespersonID  *uuid.UUID      `gorm:"column:salesperson_id;type:uuid"`
	PolicyNumber   string          `gorm:"column:policy_number;type:text"`
	CompanyID      *uuid.UUID      `gorm:"column:company_id;type:uuid;index"`
	EndDate        time.Time       `gorm:"column:end_date;type:date;not null;index"`
	LastNotifiedOn *time.Time      `gorm:"column:last_notified_on;type:date"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Cross-selling opportunity lifecycle states.
const (
	CrossSellingStatusNew       = "new"
	CrossSellingStatusPending   = "pending"
	CrossSellingStatusContacted = "contacted"
	CrossSellingStatusClosed    = "closed"
)

// CrossSelling represents a cross-sell opportunity, either entered manually
// or produced by the automatic generator.
type CrossSelling struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CustomerName       string     `gorm:"column:customer_name;type:text;not null"`
	CustomerTCVKN      string     `gorm:"column:customer_tc_vkn;type:text"`
	Phone              string     `gorm:"column:phone;type:text"`
	Email              string     `gorm:"column:email;type:text"`
	ProductInterest    string     `gorm:"column:product_interest;type:text"`
	Notes              string     `gorm:"column:notes;type:text"`
	Priority           int        `gorm:"column:priority;not null;default:2"`
	Status             string     `gorm:"column:status;type:text;not null;default:'new'"`
	AssignedTo         *uuid.UUID `gorm:"column:assigned_to;type:uuid"`
	CurrentProductID   *uuid.UUID `gorm:"column:current_product_id;type:uuid"`
	SuggestedProductID *uuid.UUID `gorm:"column:suggested_product_id;type:uuid"`
	CompanyID          *uuid.UUID `gorm:"column:company_id;type:uuid;index"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

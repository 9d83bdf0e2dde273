package policies

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budunsigorta/backend/pkg/db/models"
)

// EnrichedPolicy is the outward policy row with its product, seller
// and tenant names resolved.
type EnrichedPolicy struct {
	ID                uuid.UUID       `json:"id"`
	EndDate           string          `json:"end_date"`
	CustomerName      string          `json:"customer_name"`
	CustomerTCVKN     string          `json:"customer_tc_vkn"`
	Plate             string          `json:"plate"`
	DocSerial         string          `json:"doc_serial"`
	Note              string          `json:"note"`
	Premium           decimal.Decimal `json:"premium"`
	ProductID         *uuid.UUID      `json:"product_id"`
	ProductName       string          `json:"product_name"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	LastNotifiedOn    *string         `json:"last_notified_on"`
	SalespersonID     *uuid.UUID      `json:"salesperson_id"`
	SalespersonName   string          `json:"salesperson_name"`
	PolicyNumber      string          `json:"policy_number"`
	CompanyID         *uuid.UUID      `json:"company_id"`
	CompanyName       string          `json:"company_name"`
}

type UpsertPolicyRequest struct {
	CustomerName  string          `json:"customer_name" validate:"required,min=2,max=256"`
	CustomerTCVKN string          `json:"customer_tc_vkn" validate:"max=32"`
	Plate         string          `json:"plate" validate:"max=16"`
	DocSerial     string          `json:"doc_serial" validate:"max=64"`
	Note          string          `json:"note" validate:"max=1024"`
	Premium       decimal.Decimal `json:"premium"`
	ProductID     *uuid.UUID      `json:"product_id"`
	SalespersonID *uuid.UUID      `json:"salesperson_id"`
	PolicyNumber  string          `json:"policy_number" validate:"max=64"`
	CompanyID     *uuid.UUID      `json:"company_id"`
	EndDate       string          `json:"end_date" validate:"required"`
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func baseEnriched(p models.Policy) EnrichedPolicy {
	return EnrichedPolicy{
		ID:             p.ID,
		EndDate:        formatDate(p.EndDate),
		CustomerName:   p.CustomerName,
		CustomerTCVKN:  p.CustomerTCVKN,
		Plate:          p.Plate,
		DocSerial:      p.DocSerial,
		Note:           p.Note,
		Premium:        p.Premium,
		ProductID:      p.ProductID,
		LastNotifiedOn: formatDatePtr(p.LastNotifiedOn),
		SalespersonID:  p.SalespersonID,
		PolicyNumber:   p.PolicyNumber,
		CompanyID:      p.CompanyID,
	}
}

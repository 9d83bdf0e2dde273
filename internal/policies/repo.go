package policies

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// Repository persists policies and their date-window queries.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, policy *models.Policy) error {
	if policy.ID == uuid.Nil {
		policy.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(policy).Error
}

// List returns the actor's policies, newest first.
func (r *Repository) List(ctx context.Context, actor tenant.Actor) ([]models.Policy, error) {
	var rows []models.Policy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(actor)).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	var policy models.Policy
	if err := r.db.WithContext(ctx).First(&policy, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *Repository) Update(ctx context.Context, policy *models.Policy) error {
	result := r.db.WithContext(ctx).
		Model(&models.Policy{}).
		Where("id = ?", policy.ID).
		Updates(map[string]any{
			"customer_name":   policy.CustomerName,
			"customer_tc_vkn": policy.CustomerTCVKN,
			"plate":           policy.Plate,
			"doc_serial":      policy.DocSerial,
			"note":            policy.Note,
			"premium":         policy.Premium,
			"product_id":      policy.ProductID,
			"salesperson_id":  policy.SalespersonID,
			"policy_number":   policy.PolicyNumber,
			"company_id":      policy.CompanyID,
			"end_date":        policy.EndDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Policy{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DueBetween returns policies whose end date falls inside [from, to],
// both bounds inclusive, soonest first.
func (r *Repository) DueBetween(ctx context.Context, actor tenant.Actor, from, to time.Time) ([]models.Policy, error) {
	var rows []models.Policy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(actor)).
		Where("end_date >= ? AND end_date <= ?", from, to).
		Order("end_date asc").
		Find(&rows).Error
	return rows, err
}

// ExpiredBefore returns policies whose end date is strictly before the
// cutoff, oldest expiry first.
func (r *Repository) ExpiredBefore(ctx context.Context, actor tenant.Actor, cutoff time.Time) ([]models.Policy, error) {
	var rows []models.Policy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(actor)).
		Where("end_date < ?", cutoff).
		Order("end_date asc").
		Find(&rows).Error
	return rows, err
}

// RecentSince returns policies ending on or after the cutoff across
// every tenant. The cross-sell generator feeds on this window.
func (r *Repository) RecentSince(ctx context.Context, cutoff time.Time) ([]models.Policy, error) {
	var rows []models.Policy
	err := r.db.WithContext(ctx).
		Where("end_date >= ?", cutoff).
		Order("created_at asc").
		Find(&rows).Error
	return rows, err
}

// StampNotified records the notification date on the given policies.
func (r *Repository) StampNotified(ctx context.Context, ids []uuid.UUID, on time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Policy{}).
		Where("id IN ?", ids).
		UpdateColumn("last_notified_on", on).Error
}

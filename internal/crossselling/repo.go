package crossselling

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// Repository persists cross-sell opportunities and their reminders.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, opp *models.CrossSelling) error {
	if opp.ID == uuid.Nil {
		opp.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(opp).Error
}

// CreateBatch inserts the opportunities in one statement.
func (r *Repository) CreateBatch(ctx context.Context, opps []models.CrossSelling) error {
	if len(opps) == 0 {
		return nil
	}
	for i := range opps {
		if opps[i].ID == uuid.Nil {
			opps[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&opps).Error
}

// List returns the actor's opportunities, highest priority first,
// newest first within a priority.
func (r *Repository) List(ctx context.Context, actor tenant.Actor) ([]models.CrossSelling, error) {
	var rows []models.CrossSelling
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(actor)).
		Order("priority desc, created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CrossSelling, error) {
	var opp models.CrossSelling
	if err := r.db.WithContext(ctx).First(&opp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &opp, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.CrossSelling{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, opp *models.CrossSelling) error {
	result := r.db.WithContext(ctx).
		Model(&models.CrossSelling{}).
		Where("id = ?", opp.ID).
		Updates(map[string]any{
			"customer_name":        opp.CustomerName,
			"customer_tc_vkn":      opp.CustomerTCVKN,
			"phone":                opp.Phone,
			"email":                opp.Email,
			"product_interest":     opp.ProductInterest,
			"notes":                opp.Notes,
			"priority":             opp.Priority,
			"status":               opp.Status,
			"assigned_to":          opp.AssignedTo,
			"current_product_id":   opp.CurrentProductID,
			"suggested_product_id": opp.SuggestedProductID,
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
	result := r.db.WithContext(ctx).Delete(&models.CrossSelling{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CustomerKeys returns the (name, tc_vkn) pairs that already have an
// opportunity, in any status. The generator skips these customers.
func (r *Repository) CustomerKeys(ctx context.Context) (map[string]struct{}, error) {
	var rows []models.CrossSelling
	if err := r.db.WithContext(ctx).
		Select("customer_name", "customer_tc_vkn").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		out[customerKey(row.CustomerName, row.CustomerTCVKN)] = struct{}{}
	}
	return out, nil
}

// Reminder operations.

func (r *Repository) CreateReminder(ctx context.Context, reminder *models.CrossSellingReminder) error {
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(reminder).Error
}

// ListReminders returns an opportunity's reminders, soonest first.
func (r *Repository) ListReminders(ctx context.Context, crossSellingID uuid.UUID) ([]models.CrossSellingReminder, error) {
	var rows []models.CrossSellingReminder
	err := r.db.WithContext(ctx).
		Where("cross_selling_id = ?", crossSellingID).
		Order("reminder_date asc").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) CompleteReminder(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.CrossSellingReminder{}).
		Where("id = ?", id).
		UpdateColumn("completed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

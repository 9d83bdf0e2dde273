package insurers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
)

// Repository persists the insurer registry. Insurers are the carriers
// whose policies agencies sell, shared across all tenants.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, name string) (*models.InsuranceCompany, error) {
	insurer := &models.InsuranceCompany{ID: uuid.New(), Name: name, Active: true}
	if err := r.db.WithContext(ctx).Create(insurer).Error; err != nil {
		return nil, err
	}
	return insurer, nil
}

// List returns every insurer ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.InsuranceCompany, error) {
	var rows []models.InsuranceCompany
	err := r.db.WithContext(ctx).Order("name asc").Find(&rows).Error
	return rows, err
}

// ListActive returns active insurers ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]models.InsuranceCompany, error) {
	var rows []models.InsuranceCompany
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name asc").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.InsuranceCompany{}).
		Where("id = ?", id).
		UpdateColumn("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InsuranceCompany{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package companies

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
)

// Repository exposes agency tenant persistence operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new company.
func (r *Repository) Create(ctx context.Context, name string) (*models.Company, error) {
	company := &models.Company{ID: uuid.New(), Name: name, Active: true}
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// ListActive returns active companies ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]models.Company, error) {
	var rows []models.Company
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name asc").
		Find(&rows).Error
	return rows, err
}

// List returns every company ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Company, error) {
	var rows []models.Company
	err := r.db.WithContext(ctx).Order("name asc").Find(&rows).Error
	return rows, err
}

// FindByID loads a single company.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// ListByIDs loads the named companies in one query.
func (r *Repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Company
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

// SetActive flips a company's active flag.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Company{}).
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

// Delete removes a company row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package salespeople

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// Repository persists roster salespeople. These are non-login sellers
// tracked alongside users in the combined directory.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, person *models.Salesperson) error {
	if person.ID == uuid.Nil {
		person.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(person).Error
}

// List returns the roster visible to the actor ordered by name.
func (r *Repository) List(ctx context.Context, actor tenant.Actor) ([]models.Salesperson, error) {
	var rows []models.Salesperson
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(actor)).
		Order("name asc").
		Find(&rows).Error
	return rows, err
}

// ListActive returns active roster entries visible to the actor.
func (r *Repository) ListActive(ctx context.Context, actor tenant.Actor) ([]models.Salesperson, error) {
	var rows []models.Salesperson
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(actor)).
		Where("active = ?", true).
		Order("name asc").
		Find(&rows).Error
	return rows, err
}

// ListByIDs loads the named roster entries in one query.
func (r *Repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Salesperson, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Salesperson
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Salesperson, error) {
	var person models.Salesperson
	if err := r.db.WithContext(ctx).First(&person, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Salesperson{}).
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
	result := r.db.WithContext(ctx).Delete(&models.Salesperson{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

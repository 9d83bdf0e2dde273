package accounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// Repository persists bookkeeping entries.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, entry *models.AccountEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns the actor's entries, most recent transaction first.
func (r *Repository) List(ctx context.Context, actor tenant.Actor) ([]models.AccountEntry, error) {
	var rows []models.AccountEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(actor)).
		Order("transaction_date desc, created_at desc").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AccountEntry, error) {
	var entry models.AccountEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) Update(ctx context.Context, entry *models.AccountEntry) error {
	result := r.db.WithContext(ctx).
		Model(&models.AccountEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"policy_id":        entry.PolicyID,
			"transaction_type": entry.TransactionType,
			"amount":           entry.Amount,
			"description":      entry.Description,
			"transaction_date": entry.TransactionDate,
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
	result := r.db.WithContext(ctx).Delete(&models.AccountEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

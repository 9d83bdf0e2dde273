package permissions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budunsigorta/backend/pkg/db/models"
)

// Repository persists per-user permission flags.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetMap returns the stored flags for one user.
func (r *Repository) GetMap(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	var rows []models.UserPermission
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		out[row.PermissionName] = row.PermissionValue
	}
	return out, nil
}

// UpsertMap writes the given flags, inserting or updating per name.
// Flags not present in the map are left untouched.
func (r *Repository) UpsertMap(ctx context.Context, userID uuid.UUID, flags map[string]bool) error {
	if len(flags) == 0 {
		return nil
	}
	rows := make([]models.UserPermission, 0, len(flags))
	for name, value := range flags {
		rows = append(rows, models.UserPermission{
			ID:              uuid.New(),
			UserID:          userID,
			PermissionName:  name,
			PermissionValue: value,
		})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "permission_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"permission_value"}),
		}).
		Create(&rows).Error
}

// HasPermission reports whether the user holds the named flag.
func (r *Repository) HasPermission(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	var row models.UserPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND permission_name = ?", userID, name).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return row.PermissionValue, nil
}

// UserIDsWithPermission returns the users holding the named flag.
func (r *Repository) UserIDsWithPermission(ctx context.Context, name string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.UserPermission{}).
		Where("permission_name = ? AND permission_value = ?", name, true).
		Pluck("user_id", &ids).Error
	return ids, err
}

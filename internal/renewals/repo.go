package renewals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budunsigorta/backend/pkg/db/models"
)

// Repository persists per-policy renewal follow-up states.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes the status for a policy, one row per policy.
func (r *Repository) Upsert(ctx context.Context, policyID uuid.UUID, status string) error {
	row := models.RenewalStatus{
		ID:       uuid.New(),
		PolicyID: policyID,
		Status:   status,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "policy_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).
		Create(&row).Error
}

// MapByPolicyIDs returns policy id → status for the given policies.
func (r *Repository) MapByPolicyIDs(ctx context.Context, policyIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(policyIDs) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	var rows []models.RenewalStatus
	if err := r.db.WithContext(ctx).Where("policy_id IN ?", policyIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(rows))
	for _, row := range rows {
		out[row.PolicyID] = row.Status
	}
	return out, nil
}

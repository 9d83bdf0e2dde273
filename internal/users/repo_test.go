package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
	"github.com/budunsigorta/backend/pkg/tenant"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	created := mustCreateUser(t, repo, "mehmet", false, nil)

	byName, err := repo.FindByUsername(ctx, "mehmet")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "mehmet", byID.Username)

	_, err = repo.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListAppliesTenantScope(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	companyA := uuid.New()
	companyB := uuid.New()
	mustCreateUser(t, repo, "admin", true, nil)
	mustCreateUser(t, repo, "ali", false, &companyA)
	mustCreateUser(t, repo, "veli", false, &companyB)

	all, err := repo.List(ctx, tenant.Actor{IsAdmin: true})
	require.NoError(t, err)
	require.Len(t, all, 3)

	scoped, err := repo.List(ctx, tenant.Actor{CompanyID: &companyA})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, "ali", scoped[0].Username)

	blind, err := repo.List(ctx, tenant.Actor{})
	require.NoError(t, err)
	require.Empty(t, blind)
}

func TestRepositoryUpdateLastLogin(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	user := mustCreateUser(t, repo, "zeynep", false, nil)
	require.Nil(t, user.LastLoginAt)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, at))

	reloaded, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
}

func TestRepositoryDeleteRemovesPermissions(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	user := mustCreateUser(t, repo, "gone", false, nil)
	require.NoError(t, db.Create(&models.UserPermission{
		ID:              uuid.New(),
		UserID:          user.ID,
		PermissionName:  "policies_view",
		PermissionValue: true,
	}).Error)

	require.NoError(t, repo.DeleteByUsername(ctx, "gone"))

	var permCount int64
	require.NoError(t, db.Model(&models.UserPermission{}).Where("user_id = ?", user.ID).Count(&permCount).Error)
	require.Zero(t, permCount)

	require.ErrorIs(t, repo.DeleteByUsername(ctx, "gone"), gorm.ErrRecordNotFound)
}

func TestRepositoryCountAdmins(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	count, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	mustCreateUser(t, repo, "root", true, nil)
	mustCreateUser(t, repo, "plain", false, nil)

	count, err = repo.CountAdmins(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

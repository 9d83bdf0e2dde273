package permissions

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
)

func newTestService(t *testing.T) (*Service, *Repository) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	repo := NewRepository(gdb)
	logg := logger.New(logger.Options{ServiceName: "permissions-test", Output: io.Discard})
	svc, err := NewService(ServiceParams{Repo: repo, Logger: logg})
	require.NoError(t, err)
	return svc, repo
}

func seedUser(t *testing.T, repo *Repository) uuid.UUID {
	t.Helper()
	user := models.User{ID: uuid.New(), Username: "tester-" + uuid.NewString()[:8], PasswordHash: "x"}
	require.NoError(t, repo.db.Create(&user).Error)
	return user.ID
}

func TestGetForUserFillsMissingFlags(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userID := seedUser(t, repo)

	require.NoError(t, svc.SetForUser(ctx, userID, map[string]bool{"policies_view": true}))

	flags, err := svc.GetForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, flags, len(Known))
	require.True(t, flags["policies_view"])
	require.False(t, flags["users_delete"])
}

func TestSetForUserRejectsUnknownFlag(t *testing.T) {
	svc, repo := newTestService(t)
	userID := seedUser(t, repo)

	err := svc.SetForUser(context.Background(), userID, map[string]bool{"launch_rockets": true})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeValidation, coreerrors.As(err).Code())
}

func TestUpsertOverwritesExistingFlag(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	userID := seedUser(t, repo)

	require.NoError(t, svc.SetForUser(ctx, userID, map[string]bool{"policies_add": true}))
	require.NoError(t, svc.SetForUser(ctx, userID, map[string]bool{"policies_add": false}))

	flags, err := svc.GetForUser(ctx, userID)
	require.NoError(t, err)
	require.False(t, flags["policies_add"])

	var count int64
	require.NoError(t, repo.db.Model(&models.UserPermission{}).
		Where("user_id = ? AND permission_name = ?", userID, "policies_add").
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestApplyRoleTemplates(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	manager := seedUser(t, repo)
	flags, err := svc.ApplyRole(ctx, manager, "YÖNETİCİ")
	require.NoError(t, err)
	for _, name := range Known {
		require.True(t, flags[name], name)
	}

	seller := seedUser(t, repo)
	flags, err = svc.ApplyRole(ctx, seller, "SATIŞÇI")
	require.NoError(t, err)
	require.True(t, flags["policies_add"])
	require.True(t, flags["renewals_view"])
	require.False(t, flags["policies_delete"])
	require.False(t, flags["permissions_manage"])

	_, err = svc.ApplyRole(ctx, seller, "STAJYER")
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeValidation, coreerrors.As(err).Code())
}

func TestCopyFromUser(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	source := seedUser(t, repo)
	target := seedUser(t, repo)
	_, err := svc.ApplyRole(ctx, source, "OPERATÖR")
	require.NoError(t, err)

	copied, err := svc.CopyFromUser(ctx, target, source)
	require.NoError(t, err)
	require.True(t, copied["renewals_status_update"])

	flags, err := svc.GetForUser(ctx, target)
	require.NoError(t, err)
	require.True(t, flags["documents_upload"])
	require.False(t, flags["reports_view"])

	_, err = svc.CopyFromUser(ctx, target, target)
	require.Error(t, err)
}

func TestUserIDsWithPermission(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	seller := seedUser(t, repo)
	accountant := seedUser(t, repo)
	_, err := svc.ApplyRole(ctx, seller, "SATIŞÇI")
	require.NoError(t, err)
	_, err = svc.ApplyRole(ctx, accountant, "MUHASEBECİ")
	require.NoError(t, err)

	ids, err := repo.UserIDsWithPermission(ctx, "policies_add")
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{seller}, ids)
}

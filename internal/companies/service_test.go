package companies

import (
	"context"
	"io"
	"testing"

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
	logg := logger.New(logger.Options{ServiceName: "companies-test", Output: io.Discard})
	svc, err := NewService(ServiceParams{Repo: repo, Logger: logg})
	require.NoError(t, err)
	return svc, repo
}

func TestCreateAndListActive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCompanyRequest{Name: "  Anadolu Acente  "})
	require.NoError(t, err)
	require.Equal(t, "Anadolu Acente", created.Name)
	require.True(t, created.Active)

	_, err = svc.Create(ctx, CreateCompanyRequest{Name: "Bozkurt Sigorta"})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "Anadolu Acente", active[0].Name)
	require.Equal(t, "Bozkurt Sigorta", active[1].Name)
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCompanyRequest{Name: "Anadolu Acente"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCompanyRequest{Name: "Anadolu Acente"})
	require.Error(t, err)
	coded := coreerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, coreerrors.CodeConflict, coded.Code())
}

func TestStatusHidesFromActiveList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCompanyRequest{Name: "Anadolu Acente"})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, created.ID, false))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.False(t, all[0].Active)
}

func TestDeleteMissingCompany(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCompanyRequest{Name: "Anadolu Acente"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	coded := coreerrors.As(err)
	require.NotNil(t, coded)
	require.Equal(t, coreerrors.CodeNotFound, coded.Code())
}

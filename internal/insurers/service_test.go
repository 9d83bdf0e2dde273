package insurers

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

func newTestService(t *testing.T) *Service {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	logg := logger.New(logger.Options{ServiceName: "insurers-test", Output: io.Discard})
	svc, err := NewService(ServiceParams{Repo: NewRepository(gdb), Logger: logg})
	require.NoError(t, err)
	return svc
}

func TestCreateAndListInsurers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInsurerRequest{Name: "Türkiye Sigorta"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInsurerRequest{Name: "Allianz"})
	require.NoError(t, err)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "Allianz", listed[0].Name)
	require.Equal(t, "Türkiye Sigorta", listed[1].Name)
}

func TestDuplicateInsurerName(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInsurerRequest{Name: "Allianz"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInsurerRequest{Name: "Allianz"})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeConflict, coreerrors.As(err).Code())
}

func TestStatusAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInsurerRequest{Name: "Axa"})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, created.ID, false))
	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeNotFound, coreerrors.As(err).Code())
}

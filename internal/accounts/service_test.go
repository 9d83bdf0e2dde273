package accounts

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	logg := logger.New(logger.Options{ServiceName: "accounts-test", Output: io.Discard})
	svc, err := NewService(ServiceParams{Repo: NewRepository(gdb), Logger: logg})
	require.NoError(t, err)
	return svc
}

func admin() tenant.Actor {
	return tenant.Actor{UserID: uuid.New(), Username: "admin", IsAdmin: true}
}

func TestCreateAndListNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := admin()

	_, err := svc.Create(ctx, actor, UpsertEntryRequest{
		TransactionType: "income",
		Amount:          decimal.RequireFromString("1500.00"),
		Description:     "Komisyon",
		TransactionDate: "2025-03-01",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, actor, UpsertEntryRequest{
		TransactionType: "EXPENSE",
		Amount:          decimal.RequireFromString("250.00"),
		TransactionDate: "2025-03-10",
	})
	require.NoError(t, err)

	listed, err := svc.List(ctx, actor)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "2025-03-10", listed[0].TransactionDate)
	require.Equal(t, TypeExpense, listed[0].TransactionType)
	require.Equal(t, "2025-03-01", listed[1].TransactionDate)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := admin()

	_, err := svc.Create(ctx, actor, UpsertEntryRequest{
		TransactionType: "transfer",
		Amount:          decimal.NewFromInt(10),
		TransactionDate: "2025-03-01",
	})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeValidation, coreerrors.As(err).Code())

	_, err = svc.Create(ctx, actor, UpsertEntryRequest{
		TransactionType: "income",
		Amount:          decimal.NewFromInt(-10),
		TransactionDate: "2025-03-01",
	})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeValidation, coreerrors.As(err).Code())

	_, err = svc.Create(ctx, actor, UpsertEntryRequest{
		TransactionType: "income",
		Amount:          decimal.NewFromInt(10),
		TransactionDate: "01.03.2025",
	})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeValidation, coreerrors.As(err).Code())
}

func TestTenantScoping(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	companyA := uuid.New()
	companyB := uuid.New()
	created, err := svc.Create(ctx, admin(), UpsertEntryRequest{
		TransactionType: "income",
		Amount:          decimal.NewFromInt(100),
		TransactionDate: "2025-03-01",
		CompanyID:       &companyB,
	})
	require.NoError(t, err)

	scoped := tenant.Actor{UserID: uuid.New(), Username: "scoped", CompanyID: &companyA}
	listed, err := svc.List(ctx, scoped)
	require.NoError(t, err)
	require.Empty(t, listed)

	_, err = svc.Update(ctx, scoped, created.ID, UpsertEntryRequest{
		TransactionType: "income",
		Amount:          decimal.NewFromInt(100),
		TransactionDate: "2025-03-01",
	})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeNotFound, coreerrors.As(err).Code())

	err = svc.Delete(ctx, scoped, created.ID)
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeNotFound, coreerrors.As(err).Code())
}

func TestUpdateRewritesEntry(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	actor := admin()

	created, err := svc.Create(ctx, actor, UpsertEntryRequest{
		TransactionType: "income",
		Amount:          decimal.NewFromInt(100),
		TransactionDate: "2025-03-01",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, actor, created.ID, UpsertEntryRequest{
		TransactionType: "expense",
		Amount:          decimal.RequireFromString("75.50"),
		Description:     "Kira",
		TransactionDate: "2025-03-05",
	})
	require.NoError(t, err)
	require.Equal(t, TypeExpense, updated.TransactionType)
	require.True(t, updated.Amount.Equal(decimal.RequireFromString("75.50")))
	require.Equal(t, "2025-03-05", updated.TransactionDate)

	require.NoError(t, svc.Delete(ctx, actor, created.ID))
	err = svc.Delete(ctx, actor, created.ID)
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeNotFound, coreerrors.As(err).Code())
}

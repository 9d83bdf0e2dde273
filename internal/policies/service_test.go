package policies

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/budunsigorta/backend/internal/companies"
	"github.com/budunsigorta/backend/internal/products"
	"github.com/budunsigorta/backend/internal/salespeople"
	"github.com/budunsigorta/backend/internal/users"
	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

var testToday = time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	db  *gorm.DB
	svc *Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	logg := logger.New(logger.Options{ServiceName: "policies-test", Output: io.Discard})
	svc, err := NewService(ServiceParams{
		Repo:      NewRepository(gdb),
		Products:  products.NewRepository(gdb),
		Users:     users.NewRepository(gdb),
		Roster:    salespeople.NewRepository(gdb),
		Companies: companies.NewRepository(gdb),
		Logger:    logg,
		Now:       func() time.Time { return testToday },
	})
	require.NoError(t, err)
	return &testEnv{db: gdb, svc: svc}
}

func adminActor() tenant.Actor {
	return tenant.Actor{UserID: uuid.New(), Username: "admin", IsAdmin: true}
}

func (e *testEnv) seedCompany(t *testing.T, name string) uuid.UUID {
	t.Helper()
	company := models.Company{ID: uuid.New(), Name: name, Active: true}
	require.NoError(t, e.db.Create(&company).Error)
	return company.ID
}

func (e *testEnv) seedProduct(t *testing.T, name string, commission string) uuid.UUID {
	t.Helper()
	product := models.Product{
		ID:                uuid.New(),
		Name:              name,
		CommissionPercent: decimal.RequireFromString(commission),
		Active:            true,
	}
	require.NoError(t, e.db.Create(&product).Error)
	return product.ID
}

func TestCreateEnrichesNames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	companyID := env.seedCompany(t, "Anadolu Acente")
	productID := env.seedProduct(t, "KASKO", "15.00")
	roster := models.Salesperson{ID: uuid.New(), Name: "Mehmet", Active: true, CompanyID: &companyID}
	require.NoError(t, env.db.Create(&roster).Error)

	created, err := env.svc.Create(ctx, adminActor(), UpsertPolicyRequest{
		CustomerName:  "Ali Veli",
		CustomerTCVKN: "12345678901",
		Plate:         "34 abc 123",
		Premium:       decimal.RequireFromString("4500.00"),
		ProductID:     &productID,
		SalespersonID: &roster.ID,
		PolicyNumber:  "POL-2025-001",
		CompanyID:     &companyID,
		EndDate:       "2025-06-30",
	})
	require.NoError(t, err)
	require.Equal(t, "KASKO", created.ProductName)
	require.True(t, created.CommissionPercent.Equal(decimal.RequireFromString("15.00")))
	require.Equal(t, "Mehmet", created.SalespersonName)
	require.Equal(t, "Anadolu Acente", created.CompanyName)
	require.Equal(t, "34 ABC 123", created.Plate)
	require.Equal(t, "2025-06-30", created.EndDate)
	require.Nil(t, created.LastNotifiedOn)
}

func TestEnrichResolvesUserSellers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := models.User{ID: uuid.New(), Username: "ayse", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&user).Error)

	created, err := env.svc.Create(ctx, adminActor(), UpsertPolicyRequest{
		CustomerName:  "Ali Veli",
		Premium:       decimal.NewFromInt(1000),
		SalespersonID: &user.ID,
		EndDate:       "2025-06-30",
	})
	require.NoError(t, err)
	require.Equal(t, "ayse", created.SalespersonName)
}

func TestDueWithinDaysInclusiveWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := adminActor()

	for _, tc := range []struct {
		name string
		end  string
	}{
		{"EndsToday", "2025-03-15"},
		{"EndsAtBoundary", "2025-03-25"},
		{"EndsAfterWindow", "2025-03-26"},
		{"AlreadyExpired", "2025-03-14"},
	} {
		_, err := env.svc.Create(ctx, actor, UpsertPolicyRequest{
			CustomerName: tc.name,
			Premium:      decimal.NewFromInt(100),
			EndDate:      tc.end,
		})
		require.NoError(t, err)
	}

	due, err := env.svc.DueWithinDays(ctx, actor, 10)
	require.NoError(t, err)
	require.Len(t, due, 2)
	require.Equal(t, "EndsToday", due[0].CustomerName)
	require.Equal(t, "EndsAtBoundary", due[1].CustomerName)

	overdue, err := env.svc.Overdue(ctx, actor)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	require.Equal(t, "AlreadyExpired", overdue[0].CustomerName)
}

func TestListScopedByTenant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := adminActor()

	companyA := env.seedCompany(t, "A")
	companyB := env.seedCompany(t, "B")
	_, err := env.svc.Create(ctx, actor, UpsertPolicyRequest{
		CustomerName: "Mine", Premium: decimal.NewFromInt(100), CompanyID: &companyA, EndDate: "2025-06-30",
	})
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, actor, UpsertPolicyRequest{
		CustomerName: "Theirs", Premium: decimal.NewFromInt(100), CompanyID: &companyB, EndDate: "2025-06-30",
	})
	require.NoError(t, err)

	scoped := tenant.Actor{UserID: uuid.New(), Username: "scoped", CompanyID: &companyA}
	listed, err := env.svc.List(ctx, scoped)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Mine", listed[0].CustomerName)

	all, err := env.svc.List(ctx, actor)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestUpdateAcrossTenantIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	companyA := env.seedCompany(t, "A")
	companyB := env.seedCompany(t, "B")
	created, err := env.svc.Create(ctx, adminActor(), UpsertPolicyRequest{
		CustomerName: "Ali Veli", Premium: decimal.NewFromInt(100), CompanyID: &companyB, EndDate: "2025-06-30",
	})
	require.NoError(t, err)

	scoped := tenant.Actor{UserID: uuid.New(), Username: "scoped", CompanyID: &companyA}
	_, err = env.svc.Update(ctx, scoped, created.ID, UpsertPolicyRequest{
		CustomerName: "Ali Veli", Premium: decimal.NewFromInt(100), EndDate: "2025-06-30",
	})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeNotFound, coreerrors.As(err).Code())

	err = env.svc.Delete(ctx, scoped, created.ID)
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeNotFound, coreerrors.As(err).Code())
}

func TestCreateForcesActorCompany(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	companyA := env.seedCompany(t, "A")
	companyB := env.seedCompany(t, "B")
	scoped := tenant.Actor{UserID: uuid.New(), Username: "scoped", CompanyID: &companyA}

	created, err := env.svc.Create(ctx, scoped, UpsertPolicyRequest{
		CustomerName: "Ali Veli", Premium: decimal.NewFromInt(100), CompanyID: &companyB, EndDate: "2025-06-30",
	})
	require.NoError(t, err)
	require.NotNil(t, created.CompanyID)
	require.Equal(t, companyA, *created.CompanyID)
}

func TestCreateRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := adminActor()

	_, err := env.svc.Create(ctx, actor, UpsertPolicyRequest{
		CustomerName: "Ali Veli", Premium: decimal.NewFromInt(100), EndDate: "30/06/2025",
	})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeValidation, coreerrors.As(err).Code())

	_, err = env.svc.Create(ctx, actor, UpsertPolicyRequest{
		CustomerName: "   ", Premium: decimal.NewFromInt(100), EndDate: "2025-06-30",
	})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeValidation, coreerrors.As(err).Code())

	_, err = env.svc.Create(ctx, actor, UpsertPolicyRequest{
		CustomerName: "Ali Veli", Premium: decimal.NewFromInt(-5), EndDate: "2025-06-30",
	})
	require.Error(t, err)
	require.Equal(t, coreerrors.CodeValidation, coreerrors.As(err).Code())
}

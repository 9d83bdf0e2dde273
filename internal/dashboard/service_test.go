package dashboard

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
	"github.com/budunsigorta/backend/pkg/db/models"
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

	logg := logger.New(logger.Options{ServiceName: "dashboard-test", Output: io.Discard})
	svc, err := NewService(ServiceParams{
		DB:        gdb,
		Companies: companies.NewRepository(gdb),
		Logger:    logg,
		Now:       func() time.Time { return testToday },
	})
	require.NoError(t, err)
	return &testEnv{db: gdb, svc: svc}
}

func (e *testEnv) seedPolicy(t *testing.T, endDate string, companyID *uuid.UUID) {
	t.Helper()
	end, err := time.ParseInLocation(time.DateOnly, endDate, time.UTC)
	require.NoError(t, err)
	require.NoError(t, e.db.Create(&models.Policy{
		ID:           uuid.New(),
		CustomerName: "Ali Veli",
		Premium:      decimal.NewFromInt(100),
		EndDate:      end,
		CompanyID:    companyID,
	}).Error)
}

func TestSummarizeCounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedPolicy(t, "2025-03-20", nil) // upcoming
	env.seedPolicy(t, "2025-06-01", nil) // far future
	env.seedPolicy(t, "2025-03-01", nil) // overdue
	require.NoError(t, env.db.Create(&models.CrossSelling{
		ID: uuid.New(), CustomerName: "Ali Veli", Priority: 2,
		Status: models.CrossSellingStatusPending,
	}).Error)
	require.NoError(t, env.db.Create(&models.CrossSelling{
		ID: uuid.New(), CustomerName: "Ayşe Yılmaz", Priority: 2,
		Status: models.CrossSellingStatusClosed,
	}).Error)

	summary, err := env.svc.Summarize(ctx, tenant.Actor{
		UserID: uuid.New(), Username: "boss", IsAdmin: true,
	})
	require.NoError(t, err)
	require.Equal(t, "boss", summary.Username)
	require.True(t, summary.IsAdmin)
	require.Equal(t, "Super Admin", summary.CompanyName)
	require.EqualValues(t, 3, summary.PolicyCount)
	require.EqualValues(t, 1, summary.UpcomingRenewals)
	require.EqualValues(t, 1, summary.OverduePolicies)
	require.EqualValues(t, 1, summary.OpenOpportunities)
}

func TestSummarizeScopedUserSeesCompanyName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	companyID := uuid.New()
	require.NoError(t, env.db.Create(&models.Company{
		ID: companyID, Name: "Anadolu Acente", Active: true,
	}).Error)
	env.seedPolicy(t, "2025-03-20", &companyID)
	env.seedPolicy(t, "2025-03-20", nil) // other tenant

	summary, err := env.svc.Summarize(ctx, tenant.Actor{
		UserID: uuid.New(), Username: "ayse", CompanyID: &companyID,
	})
	require.NoError(t, err)
	require.Equal(t, "Anadolu Acente", summary.CompanyName)
	require.False(t, summary.IsAdmin)
	require.EqualValues(t, 1, summary.PolicyCount)
}

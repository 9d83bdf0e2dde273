package tenant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type scopedRow struct {
	ID        int
	CompanyID *uuid.UUID `gorm:"type:uuid"`
}

func newScopedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&scopedRow{}))
	return db
}

func TestScope(t *testing.T) {
	db := newScopedDB(t)

	companyA := uuid.New()
	companyB := uuid.New()
	require.NoError(t, db.Create(&scopedRow{ID: 1, CompanyID: &companyA}).Error)
	require.NoError(t, db.Create(&scopedRow{ID: 2, CompanyID: &companyB}).Error)
	require.NoError(t, db.Create(&scopedRow{ID: 3}).Error)

	count := func(actor Actor) int64 {
		var n int64
		require.NoError(t, db.Model(&scopedRow{}).Scopes(Scope(actor)).Count(&n).Error)
		return n
	}

	admin := Actor{UserID: uuid.New(), IsAdmin: true}
	require.EqualValues(t, 3, count(admin), "admin sees every row")

	scoped := Actor{UserID: uuid.New(), CompanyID: &companyA}
	require.EqualValues(t, 1, count(scoped), "company user sees own rows only")

	blind := Actor{UserID: uuid.New()}
	require.EqualValues(t, 0, count(blind), "company-less non-admin sees nothing")
}

func TestVisible(t *testing.T) {
	companyA := uuid.New()
	companyB := uuid.New()

	admin := Actor{IsAdmin: true}
	scoped := Actor{CompanyID: &companyA}
	blind := Actor{}

	require.True(t, Visible(admin, nil))
	require.True(t, Visible(admin, &companyB))

	require.True(t, Visible(scoped, &companyA))
	require.False(t, Visible(scoped, &companyB))
	require.False(t, Visible(scoped, nil))

	require.False(t, Visible(blind, &companyA))
	require.False(t, Visible(blind, nil))
}

func TestActorPredicates(t *testing.T) {
	companyA := uuid.New()

	require.True(t, Actor{IsAdmin: true}.CanSeeAll())
	require.True(t, Actor{CompanyID: &companyA}.Scoped())
	require.True(t, Actor{}.Blind())
	require.False(t, Actor{IsAdmin: true, CompanyID: &companyA}.Scoped())
}

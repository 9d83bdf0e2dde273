package tenant

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor identifies the authenticated caller for visibility decisions.
type Actor struct {
	UserID    uuid.UUID
	Username  string
	IsAdmin   bool
	CompanyID *uuid.UUID
}

// CanSeeAll reports whether the actor is exempt from company scoping.
func (a Actor) CanSeeAll() bool {
	return a.IsAdmin
}

// Scoped reports whether the actor is limited to a single company.
func (a Actor) Scoped() bool {
	return !a.IsAdmin && a.CompanyID != nil
}

// Blind reports whether the actor can see no scoped rows at all: a
// non-admin without a company assignment.
func (a Actor) Blind() bool {
	return !a.IsAdmin && a.CompanyID == nil
}

// Scope returns a GORM scope applying the visibility rule to any table
// carrying a company_id column. Admins are unscoped, scoped actors are
// limited to their company, blind actors match nothing. Every listing
// repository applies this scope rather than re-implementing the rule.
func Scope(actor Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case actor.CanSeeAll():
			return db
		case actor.Scoped():
			return db.Where("company_id = ?", *actor.CompanyID)
		default:
			return db.Where("1 = 0")
		}
	}
}

// Visible applies the same rule to an in-memory row.
func Visible(actor Actor, companyID *uuid.UUID) bool {
	switch {
	case actor.CanSeeAll():
		return true
	case actor.Scoped():
		return companyID != nil && *companyID == *actor.CompanyID
	default:
		return false
	}
}

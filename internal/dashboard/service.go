package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// Renewals due inside this window count as upcoming on the dashboard.
const upcomingWindowDays = 30

// Summary is the landing-page payload for a logged-in user.
type Summary struct {
	Username          string `json:"username"`
	IsAdmin           bool   `json:"is_admin"`
	CompanyName       string `json:"company_name"`
	PolicyCount       int64  `json:"policy_count"`
	UpcomingRenewals  int64  `json:"upcoming_renewals"`
	OverduePolicies   int64  `json:"overdue_policies"`
	OpenOpportunities int64  `json:"open_opportunities"`
}

type companyLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type ServiceParams struct {
	DB        *gorm.DB
	Companies companyLookup
	Logger    *logger.Logger
	Now       func() time.Time
}

type Service struct {
	db        *gorm.DB
	companies companyLookup
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "db handle is required")
	}
	if params.Companies == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "company lookup is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{db: params.DB, companies: params.Companies, logg: params.Logger, now: now}, nil
}

// Summarize builds the landing-page counters for the actor.
func (s *Service) Summarize(ctx context.Context, actor tenant.Actor) (*Summary, error) {
	summary := &Summary{
		Username:    actor.Username,
		IsAdmin:     actor.IsAdmin,
		CompanyName: s.companyName(ctx, actor),
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, upcomingWindowDays)

	counts := []struct {
		dest  *int64
		label string
		query func(*gorm.DB) *gorm.DB
	}{
		{&summary.PolicyCount, "count policies", func(q *gorm.DB) *gorm.DB {
			return q.Model(&models.Policy{})
		}},
		{&summary.UpcomingRenewals, "count upcoming renewals", func(q *gorm.DB) *gorm.DB {
			return q.Model(&models.Policy{}).Where("end_date >= ? AND end_date <= ?", today, horizon)
		}},
		{&summary.OverduePolicies, "count overdue policies", func(q *gorm.DB) *gorm.DB {
			return q.Model(&models.Policy{}).Where("end_date < ?", today)
		}},
		{&summary.OpenOpportunities, "count open opportunities", func(q *gorm.DB) *gorm.DB {
			return q.Model(&models.CrossSelling{}).
				Where("status <> ?", models.CrossSellingStatusClosed)
		}},
	}
	for _, c := range counts {
		query := c.query(s.db.WithContext(ctx)).Scopes(tenant.Scope(actor))
		if err := query.Count(c.dest).Error; err != nil {
			return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, c.label)
		}
	}
	return summary, nil
}

func (s *Service) companyName(ctx context.Context, actor tenant.Actor) string {
	if actor.CompanyID == nil {
		if actor.IsAdmin {
			return "Super Admin"
		}
		return ""
	}
	company, err := s.companies.FindByID(ctx, *actor.CompanyID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Error(ctx, "dashboard company lookup failed", err)
		}
		return ""
	}
	return company.Name
}

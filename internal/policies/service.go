package policies

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

type policyRepo interface {
	Create(ctx context.Context, policy *models.Policy) error
	List(ctx context.Context, actor tenant.Actor) ([]models.Policy, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Policy, error)
	Update(ctx context.Context, policy *models.Policy) error
	Delete(ctx context.Context, id uuid.UUID) error
	DueBetween(ctx context.Context, actor tenant.Actor, from, to time.Time) ([]models.Policy, error)
	ExpiredBefore(ctx context.Context, actor tenant.Actor, cutoff time.Time) ([]models.Policy, error)
}

type productLookup interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type userLookup interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

type rosterLookup interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Salesperson, error)
}

type companyLookup interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Company, error)
}

type ServiceParams struct {
	Repo      policyRepo
	Products  productLookup
	Users     userLookup
	Roster    rosterLookup
	Companies companyLookup
	Logger    *logger.Logger
	Now       func() time.Time
}

type Service struct {
	repo      policyRepo
	products  productLookup
	users     userLookup
	roster    rosterLookup
	companies companyLookup
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "policy repository is required")
	}
	if params.Products == nil || params.Users == nil || params.Roster == nil || params.Companies == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "policy lookups are required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      params.Repo,
		products:  params.Products,
		users:     params.Users,
		roster:    params.Roster,
		companies: params.Companies,
		logg:      params.Logger,
		now:       now,
	}, nil
}

// List returns the actor's policies, enriched, newest first.
func (s *Service) List(ctx context.Context, actor tenant.Actor) ([]EnrichedPolicy, error) {
	rows, err := s.repo.List(ctx, actor)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list policies")
	}
	return s.Enrich(ctx, rows)
}

// DueWithinDays returns policies expiring between today and today+n,
// both inclusive, soonest first.
func (s *Service) DueWithinDays(ctx context.Context, actor tenant.Actor, n int) ([]EnrichedPolicy, error) {
	if n < 0 {
		return nil, coreerrors.New(coreerrors.CodeValidation, "days must not be negative")
	}
	today := truncateDate(s.now())
	rows, err := s.repo.DueBetween(ctx, actor, today, today.AddDate(0, 0, n))
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list due policies")
	}
	return s.Enrich(ctx, rows)
}

// Overdue returns policies whose end date has already passed,
// oldest expiry first.
func (s *Service) Overdue(ctx context.Context, actor tenant.Actor) ([]EnrichedPolicy, error) {
	today := truncateDate(s.now())
	rows, err := s.repo.ExpiredBefore(ctx, actor, today)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list overdue policies")
	}
	return s.Enrich(ctx, rows)
}

func (s *Service) Create(ctx context.Context, actor tenant.Actor, req UpsertPolicyRequest) (*EnrichedPolicy, error) {
	policy, err := s.buildModel(actor, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, policy); err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "create policy")
	}
	return s.enrichOne(ctx, *policy)
}

func (s *Service) Update(ctx context.Context, actor tenant.Actor, id uuid.UUID, req UpsertPolicyRequest) (*EnrichedPolicy, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coreerrors.New(coreerrors.CodeNotFound, "policy not found")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "load policy")
	}
	if !tenant.Visible(actor, existing.CompanyID) {
		return nil, coreerrors.New(coreerrors.CodeNotFound, "policy not found")
	}
	policy, err := s.buildModel(actor, req)
	if err != nil {
		return nil, err
	}
	policy.ID = id
	if !actor.IsAdmin {
		policy.CompanyID = existing.CompanyID
	}
	if err := s.repo.Update(ctx, policy); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coreerrors.New(coreerrors.CodeNotFound, "policy not found")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "update policy")
	}
	reloaded, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "reload policy")
	}
	return s.enrichOne(ctx, *reloaded)
}

func (s *Service) Delete(ctx context.Context, actor tenant.Actor, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "policy not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "load policy")
	}
	if !tenant.Visible(actor, existing.CompanyID) {
		return coreerrors.New(coreerrors.CodeNotFound, "policy not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "delete policy")
	}
	return nil
}

// Enrich resolves product, seller and tenant names with one query per
// referenced table regardless of row count.
func (s *Service) Enrich(ctx context.Context, rows []models.Policy) ([]EnrichedPolicy, error) {
	if len(rows) == 0 {
		return []EnrichedPolicy{}, nil
	}

	productIDs := make(map[uuid.UUID]struct{})
	sellerIDs := make(map[uuid.UUID]struct{})
	companyIDs := make(map[uuid.UUID]struct{})
	for _, row := range rows {
		if row.ProductID != nil {
			productIDs[*row.ProductID] = struct{}{}
		}
		if row.SalespersonID != nil {
			sellerIDs[*row.SalespersonID] = struct{}{}
		}
		if row.CompanyID != nil {
			companyIDs[*row.CompanyID] = struct{}{}
		}
	}

	products, err := s.products.ListByIDs(ctx, keys(productIDs))
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "resolve products")
	}
	users, err := s.users.ListByIDs(ctx, keys(sellerIDs))
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "resolve seller accounts")
	}
	roster, err := s.roster.ListByIDs(ctx, keys(sellerIDs))
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "resolve roster sellers")
	}
	companies, err := s.companies.ListByIDs(ctx, keys(companyIDs))
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "resolve companies")
	}

	productByID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}
	sellerNameByID := make(map[uuid.UUID]string, len(users)+len(roster))
	for _, person := range roster {
		sellerNameByID[person.ID] = person.Name
	}
	for _, u := range users {
		sellerNameByID[u.ID] = u.Username
	}
	companyNameByID := make(map[uuid.UUID]string, len(companies))
	for _, c := range companies {
		companyNameByID[c.ID] = c.Name
	}

	out := make([]EnrichedPolicy, 0, len(rows))
	for _, row := range rows {
		enriched := baseEnriched(row)
		if row.ProductID != nil {
			if product, ok := productByID[*row.ProductID]; ok {
				enriched.ProductName = product.Name
				enriched.CommissionPercent = product.CommissionPercent
			}
		}
		if row.SalespersonID != nil {
			enriched.SalespersonName = sellerNameByID[*row.SalespersonID]
		}
		if row.CompanyID != nil {
			enriched.CompanyName = companyNameByID[*row.CompanyID]
		}
		out = append(out, enriched)
	}
	return out, nil
}

func (s *Service) enrichOne(ctx context.Context, policy models.Policy) (*EnrichedPolicy, error) {
	enriched, err := s.Enrich(ctx, []models.Policy{policy})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

func (s *Service) buildModel(actor tenant.Actor, req UpsertPolicyRequest) (*models.Policy, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, coreerrors.New(coreerrors.CodeValidation, "customer name is required")
	}
	endDate, err := time.ParseInLocation(time.DateOnly, req.EndDate, time.UTC)
	if err != nil {
		return nil, coreerrors.New(coreerrors.CodeValidation, "end_date must be YYYY-MM-DD")
	}
	if req.Premium.IsNegative() {
		return nil, coreerrors.New(coreerrors.CodeValidation, "premium must not be negative")
	}
	companyID := req.CompanyID
	if !actor.IsAdmin {
		companyID = actor.CompanyID
	}
	return &models.Policy{
		CustomerName:  name,
		CustomerTCVKN: strings.TrimSpace(req.CustomerTCVKN),
		Plate:         strings.ToUpper(strings.TrimSpace(req.Plate)),
		DocSerial:     strings.TrimSpace(req.DocSerial),
		Note:          req.Note,
		Premium:       req.Premium,
		ProductID:     req.ProductID,
		SalespersonID: req.SalespersonID,
		PolicyNumber:  strings.TrimSpace(req.PolicyNumber),
		CompanyID:     companyID,
		EndDate:       endDate,
	}, nil
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func keys(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

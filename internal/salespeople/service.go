package salespeople

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// Directory entry sources.
const (
	SourceUser   = "user"
	SourceRoster = "roster"
)

// DirectoryEntry is one seller in the combined directory. Users with
// the policies_add permission and active roster entries are merged;
// when a roster name collides with a username the user entry wins.
type DirectoryEntry struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Source string    `json:"source"`
}

type SalespersonDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Active    bool       `json:"active"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
}

type CreateSalespersonRequest struct {
	Name      string     `json:"name" validate:"required,min=2,max=128"`
	CompanyID *uuid.UUID `json:"company_id"`
}

type SetStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type rosterRepo interface {
	Create(ctx context.Context, person *models.Salesperson) error
	List(ctx context.Context, actor tenant.Actor) ([]models.Salesperson, error)
	ListActive(ctx context.Context, actor tenant.Actor) ([]models.Salesperson, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sellerPermissionSource interface {
	UserIDsWithPermission(ctx context.Context, name string) ([]uuid.UUID, error)
}

type userSource interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

type ServiceParams struct {
	Roster      rosterRepo
	Permissions sellerPermissionSource
	Users       userSource
	Logger      *logger.Logger
}

type Service struct {
	roster      rosterRepo
	permissions sellerPermissionSource
	users       userSource
	logg        *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Roster == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "roster repository is required")
	}
	if params.Permissions == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "permission source is required")
	}
	if params.Users == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "user source is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	return &Service{
		roster:      params.Roster,
		permissions: params.Permissions,
		users:       params.Users,
		logg:        params.Logger,
	}, nil
}

// List returns the actor's roster, active and inactive.
func (s *Service) List(ctx context.Context, actor tenant.Actor) ([]SalespersonDTO, error) {
	rows, err := s.roster.List(ctx, actor)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list salespeople")
	}
	out := make([]SalespersonDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, SalespersonDTO{ID: row.ID, Name: row.Name, Active: row.Active, CompanyID: row.CompanyID})
	}
	return out, nil
}

// Create adds a roster entry scoped to the actor's company unless an
// admin names another tenant.
func (s *Service) Create(ctx context.Context, actor tenant.Actor, req CreateSalespersonRequest) (*SalespersonDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, coreerrors.New(coreerrors.CodeValidation, "salesperson name is required")
	}
	companyID := req.CompanyID
	if !actor.IsAdmin {
		companyID = actor.CompanyID
	}
	person := &models.Salesperson{Name: name, Active: true, CompanyID: companyID}
	if err := s.roster.Create(ctx, person); err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "create salesperson")
	}
	return &SalespersonDTO{ID: person.ID, Name: person.Name, Active: person.Active, CompanyID: person.CompanyID}, nil
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.roster.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "salesperson not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "update salesperson status")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.roster.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "salesperson not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "delete salesperson")
	}
	return nil
}

// Directory merges policy-selling users with the active roster.
func (s *Service) Directory(ctx context.Context, actor tenant.Actor) ([]DirectoryEntry, error) {
	sellerIDs, err := s.permissions.UserIDsWithPermission(ctx, "policies_add")
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "load selling users")
	}
	sellers, err := s.users.ListByIDs(ctx, sellerIDs)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "load seller accounts")
	}
	roster, err := s.roster.ListActive(ctx, actor)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "load roster")
	}

	entries := make([]DirectoryEntry, 0, len(sellers)+len(roster))
	seen := make(map[string]struct{}, len(sellers))
	for _, seller := range sellers {
		if !tenant.Visible(actor, seller.CompanyID) {
			continue
		}
		key := strings.ToLower(seller.Username)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, DirectoryEntry{ID: seller.ID, Name: seller.Username, Source: SourceUser})
	}
	for _, person := range roster {
		key := strings.ToLower(person.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, DirectoryEntry{ID: person.ID, Name: person.Name, Source: SourceRoster})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

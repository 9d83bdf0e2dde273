package companies

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db"
	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
)

// CompanyDTO is the outward shape of an agency tenant.
type CompanyDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
}

type SetStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type companyRepo interface {
	Create(ctx context.Context, name string) (*models.Company, error)
	ListActive(ctx context.Context) ([]models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceParams struct {
	Repo   companyRepo
	Logger *logger.Logger
}

type Service struct {
	repo companyRepo
	logg *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "company repository is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	return &Service{repo: params.Repo, logg: params.Logger}, nil
}

// ListActive returns the active tenants shown on the login screen.
func (s *Service) ListActive(ctx context.Context) ([]CompanyDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list active companies")
	}
	return toDTOs(rows), nil
}

// List returns every tenant, active or not.
func (s *Service) List(ctx context.Context) ([]CompanyDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list companies")
	}
	return toDTOs(rows), nil
}

// Create registers a new tenant.
func (s *Service) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, coreerrors.New(coreerrors.CodeValidation, "company name is required")
	}
	company, err := s.repo.Create(ctx, name)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, coreerrors.New(coreerrors.CodeConflict, "company already exists")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "create company")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"company_id": company.ID.String()}), "company created")
	dto := toDTO(*company)
	return &dto, nil
}

// SetStatus activates or deactivates a tenant.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "company not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "update company status")
	}
	return nil
}

// Delete removes a tenant.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "company not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "delete company")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"company_id": id.String()}), "company deleted")
	return nil
}

func toDTO(m models.Company) CompanyDTO {
	return CompanyDTO{ID: m.ID, Name: m.Name, Active: m.Active}
}

func toDTOs(rows []models.Company) []CompanyDTO {
	out := make([]CompanyDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out
}

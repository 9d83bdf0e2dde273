package insurers

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

type InsurerDTO struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
}

type CreateInsurerRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
}

type SetStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type insurerRepo interface {
	Create(ctx context.Context, name string) (*models.InsuranceCompany, error)
	List(ctx context.Context) ([]models.InsuranceCompany, error)
	ListActive(ctx context.Context) ([]models.InsuranceCompany, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceParams struct {
	Repo   insurerRepo
	Logger *logger.Logger
}

type Service struct {
	repo insurerRepo
	logg *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "insurer repository is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	return &Service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *Service) List(ctx context.Context) ([]InsurerDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list insurers")
	}
	out := make([]InsurerDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, InsurerDTO{ID: row.ID, Name: row.Name, Active: row.Active})
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req CreateInsurerRequest) (*InsurerDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, coreerrors.New(coreerrors.CodeValidation, "insurer name is required")
	}
	insurer, err := s.repo.Create(ctx, name)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, coreerrors.New(coreerrors.CodeConflict, "insurer already exists")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "create insurer")
	}
	return &InsurerDTO{ID: insurer.ID, Name: insurer.Name, Active: insurer.Active}, nil
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "insurer not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "update insurer status")
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "insurer not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "delete insurer")
	}
	return nil
}

package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db"
	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
)

type ProductDTO struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	Category          string          `json:"category"`
	Description       string          `json:"description"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
}

type UpsertProductRequest struct {
	Name              string          `json:"name" validate:"required,min=2,max=128"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
	Category          string          `json:"category" validate:"max=64"`
	Description       string          `json:"description" validate:"max=512"`
	Active            *bool           `json:"active"`
}

type productRepo interface {
	Create(ctx context.Context, product *models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceParams struct {
	Repo   productRepo
	Logger *logger.Logger
}

type Service struct {
	repo productRepo
	logg *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "product repository is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	return &Service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *Service) List(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req UpsertProductRequest) (*ProductDTO, error) {
	product, err := buildModel(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, coreerrors.New(coreerrors.CodeConflict, "product already exists")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "create product")
	}
	dto := toDTO(*product)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpsertProductRequest) (*ProductDTO, error) {
	product, err := buildModel(req)
	if err != nil {
		return nil, err
	}
	product.ID = id
	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coreerrors.New(coreerrors.CodeNotFound, "product not found")
		}
		if db.IsUniqueViolation(err, "") {
			return nil, coreerrors.New(coreerrors.CodeConflict, "product already exists")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "update product")
	}
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "reload product")
	}
	dto := toDTO(*updated)
	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "product not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func buildModel(req UpsertProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, coreerrors.New(coreerrors.CodeValidation, "product name is required")
	}
	if req.CommissionPercent.IsNegative() || req.CommissionPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, coreerrors.New(coreerrors.CodeValidation, "commission percent must be between 0 and 100")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &models.Product{
		Name:              name,
		CommissionPercent: req.CommissionPercent,
		Category:          strings.TrimSpace(req.Category),
		Description:       strings.TrimSpace(req.Description),
		Active:            active,
	}, nil
}

func toDTO(m models.Product) ProductDTO {
	return ProductDTO{
		ID:                m.ID,
		Name:              m.Name,
		CommissionPercent: m.CommissionPercent,
		Category:          m.Category,
		Description:       m.Description,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt,
	}
}

package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// Transaction directions for account entries.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type EntryDTO struct {
	ID              uuid.UUID       `json:"id"`
	PolicyID        *uuid.UUID      `json:"policy_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transaction_date"`
	CompanyID       *uuid.UUID      `json:"company_id"`
}

type UpsertEntryRequest struct {
	PolicyID        *uuid.UUID      `json:"policy_id"`
	TransactionType string          `json:"transaction_type" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description" validate:"max=512"`
	TransactionDate string          `json:"transaction_date" validate:"required"`
	CompanyID       *uuid.UUID      `json:"company_id"`
}

type entryRepo interface {
	Create(ctx context.Context, entry *models.AccountEntry) error
	List(ctx context.Context, actor tenant.Actor) ([]models.AccountEntry, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.AccountEntry, error)
	Update(ctx context.Context, entry *models.AccountEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceParams struct {
	Repo   entryRepo
	Logger *logger.Logger
}

type Service struct {
	repo entryRepo
	logg *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "account repository is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	return &Service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *Service) List(ctx context.Context, actor tenant.Actor) ([]EntryDTO, error) {
	rows, err := s.repo.List(ctx, actor)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list account entries")
	}
	out := make([]EntryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, actor tenant.Actor, req UpsertEntryRequest) (*EntryDTO, error) {
	entry, err := buildModel(actor, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "create account entry")
	}
	dto := toDTO(*entry)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, actor tenant.Actor, id uuid.UUID, req UpsertEntryRequest) (*EntryDTO, error) {
	if _, err := s.visibleEntry(ctx, actor, id); err != nil {
		return nil, err
	}
	entry, err := buildModel(actor, req)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	if err := s.repo.Update(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coreerrors.New(coreerrors.CodeNotFound, "account entry not found")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "update account entry")
	}
	reloaded, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "reload account entry")
	}
	dto := toDTO(*reloaded)
	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, actor tenant.Actor, id uuid.UUID) error {
	if _, err := s.visibleEntry(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "delete account entry")
	}
	return nil
}

func (s *Service) visibleEntry(ctx context.Context, actor tenant.Actor, id uuid.UUID) (*models.AccountEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coreerrors.New(coreerrors.CodeNotFound, "account entry not found")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "load account entry")
	}
	if !tenant.Visible(actor, entry.CompanyID) {
		return nil, coreerrors.New(coreerrors.CodeNotFound, "account entry not found")
	}
	return entry, nil
}

func buildModel(actor tenant.Actor, req UpsertEntryRequest) (*models.AccountEntry, error) {
	txType := strings.ToLower(strings.TrimSpace(req.TransactionType))
	if txType != TypeIncome && txType != TypeExpense {
		return nil, coreerrors.New(coreerrors.CodeValidation, "transaction_type must be income or expense")
	}
	if req.Amount.IsNegative() {
		return nil, coreerrors.New(coreerrors.CodeValidation, "amount must not be negative")
	}
	date, err := time.ParseInLocation(time.DateOnly, req.TransactionDate, time.UTC)
	if err != nil {
		return nil, coreerrors.New(coreerrors.CodeValidation, "transaction_date must be YYYY-MM-DD")
	}
	companyID := req.CompanyID
	if !actor.IsAdmin {
		companyID = actor.CompanyID
	}
	return &models.AccountEntry{
		PolicyID:        req.PolicyID,
		TransactionType: txType,
		Amount:          req.Amount,
		Description:     strings.TrimSpace(req.Description),
		TransactionDate: date,
		CompanyID:       companyID,
	}, nil
}

func toDTO(m models.AccountEntry) EntryDTO {
	return EntryDTO{
		ID:              m.ID,
		PolicyID:        m.PolicyID,
		TransactionType: m.TransactionType,
		Amount:          m.Amount,
		Description:     m.Description,
		TransactionDate: m.TransactionDate.Format(time.DateOnly),
		CompanyID:       m.CompanyID,
	}
}

package crossselling

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

var knownStatuses = map[string]struct{}{
	models.CrossSellingStatusNew:       {},
	models.CrossSellingStatusPending:   {},
	models.CrossSellingStatusContacted: {},
	models.CrossSellingStatusClosed:    {},
}

type OpportunityDTO struct {
	ID                 uuid.UUID  `json:"id"`
	CustomerName       string     `json:"customer_name"`
	CustomerTCVKN      string     `json:"customer_tc_vkn"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	ProductInterest    string     `json:"product_interest"`
	Notes              string     `json:"notes"`
	Priority           int        `json:"priority"`
	Status             string     `json:"status"`
	AssignedTo         *uuid.UUID `json:"assigned_to"`
	CurrentProductID   *uuid.UUID `json:"current_product_id"`
	SuggestedProductID *uuid.UUID `json:"suggested_product_id"`
	CompanyID          *uuid.UUID `json:"company_id"`
	CreatedAt          time.Time  `json:"created_at"`
}

type UpsertOpportunityRequest struct {
	CustomerName       string     `json:"customer_name" validate:"required,min=2,max=256"`
	CustomerTCVKN      string     `json:"customer_tc_vkn" validate:"max=32"`
	Phone              string     `json:"phone" validate:"max=32"`
	Email              string     `json:"email" validate:"omitempty,email"`
	ProductInterest    string     `json:"product_interest" validate:"max=128"`
	Notes              string     `json:"notes" validate:"max=1024"`
	Priority           int        `json:"priority" validate:"omitempty,min=1,max=3"`
	Status             string     `json:"status"`
	AssignedTo         *uuid.UUID `json:"assigned_to"`
	CurrentProductID   *uuid.UUID `json:"current_product_id"`
	SuggestedProductID *uuid.UUID `json:"suggested_product_id"`
	CompanyID          *uuid.UUID `json:"company_id"`
}

type ReminderDTO struct {
	ID             uuid.UUID `json:"id"`
	CrossSellingID uuid.UUID `json:"cross_selling_id"`
	ReminderDate   string    `json:"reminder_date"`
	ReminderType   string    `json:"reminder_type"`
	Notes          string    `json:"notes"`
	Completed      bool      `json:"completed"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreateReminderRequest struct {
	ReminderDate string `json:"reminder_date" validate:"required"`
	ReminderType string `json:"reminder_type" validate:"max=64"`
	Notes        string `json:"notes" validate:"max=1024"`
}

type opportunityRepo interface {
	Create(ctx context.Context, opp *models.CrossSelling) error
	List(ctx context.Context, actor tenant.Actor) ([]models.CrossSelling, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CrossSelling, error)
	Update(ctx context.Context, opp *models.CrossSelling) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateReminder(ctx context.Context, reminder *models.CrossSellingReminder) error
	ListReminders(ctx context.Context, crossSellingID uuid.UUID) ([]models.CrossSellingReminder, error)
	CompleteReminder(ctx context.Context, id uuid.UUID) error
}

type ServiceParams struct {
	Repo   opportunityRepo
	Logger *logger.Logger
}

type Service struct {
	repo opportunityRepo
	logg *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "opportunity repository is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	return &Service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *Service) List(ctx context.Context, actor tenant.Actor) ([]OpportunityDTO, error) {
	rows, err := s.repo.List(ctx, actor)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list opportunities")
	}
	out := make([]OpportunityDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, actor tenant.Actor, req UpsertOpportunityRequest) (*OpportunityDTO, error) {
	opp, err := buildModel(actor, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, opp); err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "create opportunity")
	}
	dto := toDTO(*opp)
	return &dto, nil
}

func (s *Service) Update(ctx context.Context, actor tenant.Actor, id uuid.UUID, req UpsertOpportunityRequest) (*OpportunityDTO, error) {
	existing, err := s.visibleOpportunity(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	opp, err := buildModel(actor, req)
	if err != nil {
		return nil, err
	}
	opp.ID = id
	if !actor.IsAdmin {
		opp.CompanyID = existing.CompanyID
	}
	if err := s.repo.Update(ctx, opp); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coreerrors.New(coreerrors.CodeNotFound, "opportunity not found")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "update opportunity")
	}
	reloaded, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "reload opportunity")
	}
	dto := toDTO(*reloaded)
	return &dto, nil
}

// SetStatus moves an opportunity to the given follow-up state without
// touching the rest of its fields.
func (s *Service) SetStatus(ctx context.Context, actor tenant.Actor, id uuid.UUID, status string) (*OpportunityDTO, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if _, ok := knownStatuses[status]; !ok {
		return nil, coreerrors.New(coreerrors.CodeValidation, "unknown opportunity status")
	}
	if _, err := s.visibleOpportunity(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coreerrors.New(coreerrors.CodeNotFound, "opportunity not found")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "update opportunity status")
	}
	reloaded, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "reload opportunity")
	}
	dto := toDTO(*reloaded)
	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, actor tenant.Actor, id uuid.UUID) error {
	if _, err := s.visibleOpportunity(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "delete opportunity")
	}
	return nil
}

// AddReminder schedules a follow-up for an opportunity the actor can see.
func (s *Service) AddReminder(ctx context.Context, actor tenant.Actor, crossSellingID uuid.UUID, req CreateReminderRequest) (*ReminderDTO, error) {
	if _, err := s.visibleOpportunity(ctx, actor, crossSellingID); err != nil {
		return nil, err
	}
	date, err := time.ParseInLocation(time.DateOnly, req.ReminderDate, time.UTC)
	if err != nil {
		return nil, coreerrors.New(coreerrors.CodeValidation, "reminder_date must be YYYY-MM-DD")
	}
	reminder := &models.CrossSellingReminder{
		CrossSellingID: crossSellingID,
		ReminderDate:   date,
		ReminderType:   strings.TrimSpace(req.ReminderType),
		Notes:          req.Notes,
	}
	if err := s.repo.CreateReminder(ctx, reminder); err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "create reminder")
	}
	dto := reminderToDTO(*reminder)
	return &dto, nil
}

func (s *Service) ListReminders(ctx context.Context, actor tenant.Actor, crossSellingID uuid.UUID) ([]ReminderDTO, error) {
	if _, err := s.visibleOpportunity(ctx, actor, crossSellingID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListReminders(ctx, crossSellingID)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "list reminders")
	}
	out := make([]ReminderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, reminderToDTO(row))
	}
	return out, nil
}

func (s *Service) CompleteReminder(ctx context.Context, actor tenant.Actor, crossSellingID, reminderID uuid.UUID) error {
	if _, err := s.visibleOpportunity(ctx, actor, crossSellingID); err != nil {
		return err
	}
	if err := s.repo.CompleteReminder(ctx, reminderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "reminder not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "complete reminder")
	}
	return nil
}

func (s *Service) visibleOpportunity(ctx context.Context, actor tenant.Actor, id uuid.UUID) (*models.CrossSelling, error) {
	opp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coreerrors.New(coreerrors.CodeNotFound, "opportunity not found")
		}
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "load opportunity")
	}
	if !tenant.Visible(actor, opp.CompanyID) {
		return nil, coreerrors.New(coreerrors.CodeNotFound, "opportunity not found")
	}
	return opp, nil
}

func buildModel(actor tenant.Actor, req UpsertOpportunityRequest) (*models.CrossSelling, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, coreerrors.New(coreerrors.CodeValidation, "customer name is required")
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = models.CrossSellingStatusNew
	}
	if _, ok := knownStatuses[status]; !ok {
		return nil, coreerrors.New(coreerrors.CodeValidation, "unknown opportunity status")
	}
	priority := req.Priority
	if priority == 0 {
		priority = PriorityFor(strings.ToUpper(strings.TrimSpace(req.ProductInterest)))
	}
	companyID := req.CompanyID
	if !actor.IsAdmin {
		companyID = actor.CompanyID
	}
	return &models.CrossSelling{
		CustomerName:       name,
		CustomerTCVKN:      strings.TrimSpace(req.CustomerTCVKN),
		Phone:              strings.TrimSpace(req.Phone),
		Email:              strings.TrimSpace(req.Email),
		ProductInterest:    strings.TrimSpace(req.ProductInterest),
		Notes:              req.Notes,
		Priority:           priority,
		Status:             status,
		AssignedTo:         req.AssignedTo,
		CurrentProductID:   req.CurrentProductID,
		SuggestedProductID: req.SuggestedProductID,
		CompanyID:          companyID,
	}, nil
}

func toDTO(m models.CrossSelling) OpportunityDTO {
	return OpportunityDTO{
		ID:                 m.ID,
		CustomerName:       m.CustomerName,
		CustomerTCVKN:      m.CustomerTCVKN,
		Phone:              m.Phone,
		Email:              m.Email,
		ProductInterest:    m.ProductInterest,
		Notes:              m.Notes,
		Priority:           m.Priority,
		Status:             m.Status,
		AssignedTo:         m.AssignedTo,
		CurrentProductID:   m.CurrentProductID,
		SuggestedProductID: m.SuggestedProductID,
		CompanyID:          m.CompanyID,
		CreatedAt:          m.CreatedAt,
	}
}

func reminderToDTO(m models.CrossSellingReminder) ReminderDTO {
	return ReminderDTO{
		ID:             m.ID,
		CrossSellingID: m.CrossSellingID,
		ReminderDate:   m.ReminderDate.Format(time.DateOnly),
		ReminderType:   m.ReminderType,
		Notes:          m.Notes,
		Completed:      m.Completed,
	}
}

func customerKey(name, tcVKN string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.TrimSpace(tcVKN)
}

package renewals

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/internal/policies"
	"github.com/budunsigorta/backend/pkg/db/models"
	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// Follow-up states a renewal can be moved through.
const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusRenewed   = "renewed"
	StatusLost      = "lost"
)

var knownStatuses = map[string]struct{}{
	StatusPending:   {},
	StatusContacted: {},
	StatusRenewed:   {},
	StatusLost:      {},
}

// RenewalItem is an enriched policy with its follow-up state attached.
// Policies never touched default to pending.
type RenewalItem struct {
	policies.EnrichedPolicy
	RenewalStatus string `json:"renewal_status"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type policySource interface {
	DueWithinDays(ctx context.Context, actor tenant.Actor, n int) ([]policies.EnrichedPolicy, error)
	Overdue(ctx context.Context, actor tenant.Actor) ([]policies.EnrichedPolicy, error)
}

type policyLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Policy, error)
}

type statusRepo interface {
	Upsert(ctx context.Context, policyID uuid.UUID, status string) error
	MapByPolicyIDs(ctx context.Context, policyIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

type ServiceParams struct {
	Policies     policySource
	PolicyLoader policyLoader
	Statuses     statusRepo
	Logger       *logger.Logger
}

type Service struct {
	policies policySource
	loader   policyLoader
	statuses statusRepo
	logg     *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Policies == nil || params.PolicyLoader == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "policy source is required")
	}
	if params.Statuses == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "status repository is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	return &Service{
		policies: params.Policies,
		loader:   params.PolicyLoader,
		statuses: params.Statuses,
		logg:     params.Logger,
	}, nil
}

// Due returns renewals expiring within n days, soonest first.
func (s *Service) Due(ctx context.Context, actor tenant.Actor, days int) ([]RenewalItem, error) {
	rows, err := s.policies.DueWithinDays(ctx, actor, days)
	if err != nil {
		return nil, err
	}
	return s.attachStatuses(ctx, rows)
}

// Overdue returns renewals already past their end date, oldest first.
func (s *Service) Overdue(ctx context.Context, actor tenant.Actor) ([]RenewalItem, error) {
	rows, err := s.policies.Overdue(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.attachStatuses(ctx, rows)
}

// StatusFor returns a policy's current renewal state, defaulting to
// pending when it was never touched.
func (s *Service) StatusFor(ctx context.Context, actor tenant.Actor, policyID uuid.UUID) (string, error) {
	policy, err := s.loader.FindByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", coreerrors.New(coreerrors.CodeNotFound, "policy not found")
		}
		return "", coreerrors.Wrap(coreerrors.CodeInternal, err, "load policy")
	}
	if !tenant.Visible(actor, policy.CompanyID) {
		return "", coreerrors.New(coreerrors.CodeNotFound, "policy not found")
	}
	statuses, err := s.statuses.MapByPolicyIDs(ctx, []uuid.UUID{policyID})
	if err != nil {
		return "", coreerrors.Wrap(coreerrors.CodeInternal, err, "load renewal status")
	}
	if status, ok := statuses[policyID]; ok {
		return status, nil
	}
	return StatusPending, nil
}

// SetStatus moves a policy's renewal to the given state.
func (s *Service) SetStatus(ctx context.Context, actor tenant.Actor, policyID uuid.UUID, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if _, ok := knownStatuses[status]; !ok {
		return coreerrors.New(coreerrors.CodeValidation, "unknown renewal status")
	}
	policy, err := s.loader.FindByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coreerrors.New(coreerrors.CodeNotFound, "policy not found")
		}
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "load policy")
	}
	if !tenant.Visible(actor, policy.CompanyID) {
		return coreerrors.New(coreerrors.CodeNotFound, "policy not found")
	}
	if err := s.statuses.Upsert(ctx, policyID, status); err != nil {
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "save renewal status")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"policy_id": policyID.String(),
		"status":    status,
	}), "renewal status updated")
	return nil
}

func (s *Service) attachStatuses(ctx context.Context, rows []policies.EnrichedPolicy) ([]RenewalItem, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	statusByID, err := s.statuses.MapByPolicyIDs(ctx, ids)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "load renewal statuses")
	}
	out := make([]RenewalItem, 0, len(rows))
	for _, row := range rows {
		status, ok := statusByID[row.ID]
		if !ok {
			status = StatusPending
		}
		out = append(out, RenewalItem{EnrichedPolicy: row, RenewalStatus: status})
	}
	return out, nil
}

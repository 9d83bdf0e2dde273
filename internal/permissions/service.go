package permissions

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	coreerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/logger"
)

type UpdatePermissionsRequest struct {
	Permissions map[string]bool `json:"permissions" validate:"required"`
}

type ApplyRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type CopyPermissionsRequest struct {
	SourceUserID uuid.UUID `json:"source_user_id" validate:"required"`
}

type permissionRepo interface {
	GetMap(ctx context.Context, userID uuid.UUID) (map[string]bool, error)
	UpsertMap(ctx context.Context, userID uuid.UUID, flags map[string]bool) error
}

type ServiceParams struct {
	Repo   permissionRepo
	Logger *logger.Logger
}

type Service struct {
	repo permissionRepo
	logg *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "permission repository is required")
	}
	if params.Logger == nil {
		return nil, coreerrors.New(coreerrors.CodeInternal, "logger is required")
	}
	return &Service{repo: params.Repo, logg: params.Logger}, nil
}

// GetForUser returns the user's full flag map. Flags never stored for
// the user come back false so clients always see the complete set.
func (s *Service) GetForUser(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	stored, err := s.repo.GetMap(ctx, userID)
	if err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "load permissions")
	}
	out := make(map[string]bool, len(Known))
	for _, name := range Known {
		out[name] = stored[name]
	}
	return out, nil
}

// SetForUser upserts the given flags after validating their names.
func (s *Service) SetForUser(ctx context.Context, userID uuid.UUID, flags map[string]bool) error {
	if len(flags) == 0 {
		return coreerrors.New(coreerrors.CodeValidation, "no permissions provided")
	}
	for name := range flags {
		if !IsKnown(name) {
			return coreerrors.New(coreerrors.CodeValidation, fmt.Sprintf("unknown permission %q", name))
		}
	}
	if err := s.repo.UpsertMap(ctx, userID, flags); err != nil {
		return coreerrors.Wrap(coreerrors.CodeInternal, err, "save permissions")
	}
	return nil
}

// ApplyRole overwrites the user's flags with a role template.
func (s *Service) ApplyRole(ctx context.Context, userID uuid.UUID, role string) (map[string]bool, error) {
	template, ok := TemplateFor(role)
	if !ok {
		return nil, coreerrors.New(coreerrors.CodeValidation, fmt.Sprintf("unknown role %q", role))
	}
	if err := s.repo.UpsertMap(ctx, userID, template); err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "apply role template")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"target_user_id": userID.String(),
		"role":           role,
	}), "role template applied")
	return template, nil
}

// CopyFromUser replicates one user's full flag map onto another.
func (s *Service) CopyFromUser(ctx context.Context, targetUserID, sourceUserID uuid.UUID) (map[string]bool, error) {
	if targetUserID == sourceUserID {
		return nil, coreerrors.New(coreerrors.CodeValidation, "source and target user are the same")
	}
	source, err := s.GetForUser(ctx, sourceUserID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertMap(ctx, targetUserID, source); err != nil {
		return nil, coreerrors.Wrap(coreerrors.CodeInternal, err, "copy permissions")
	}
	return source, nil
}

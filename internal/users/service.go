package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/config"
	"github.com/budunsigorta/backend/pkg/db"
	"github.com/budunsigorta/backend/pkg/db/models"
	pkgerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/security"
	"github.com/budunsigorta/backend/pkg/tenant"
)

// Service defines the behavior needed by the users controller.
type Service interface {
	List(ctx context.Context, actor tenant.Actor) ([]UserDTO, error)
	Create(ctx context.Context, actor tenant.Actor, req CreateUserRequest) (*UserDTO, error)
	Delete(ctx context.Context, actor tenant.Actor, username string) error
}

// CreateUserRequest is the JSON body accepted when creating a user.
type CreateUserRequest struct {
	Username  string     `json:"username" validate:"required,min=3,max=64"`
	Password  string     `json:"password" validate:"omitempty,min=6,max=128"`
	IsAdmin   bool       `json:"is_admin"`
	CompanyID *uuid.UUID `json:"company_id"`
}

type repository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, actor tenant.Actor) ([]models.User, error)
	DeleteByUsername(ctx context.Context, username string) error
}

type service struct {
	repo        repository
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo           repository
	PasswordConfig config.PasswordConfig
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	return &service{repo: params.Repo, passwordCfg: params.PasswordConfig}, nil
}

func (s *service) List(ctx context.Context, actor tenant.Actor) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx, actor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, actor tenant.Actor, req CreateUserRequest) (*UserDTO, error) {
	username := strings.TrimSpace(strings.ToLower(req.Username))
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}

	// Non-admin actors can only provision users inside their own company.
	companyID := req.CompanyID
	if !actor.IsAdmin {
		companyID = actor.CompanyID
	}

	password := req.Password
	if password == "" {
		generated, err := security.GenerateTempPassword(12)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
		}
		password = generated
	}

	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin && actor.IsAdmin,
		CompanyID:    companyID,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, actor tenant.Actor, username string) error {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if username == strings.ToLower(actor.Username) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot delete your own account")
	}

	target, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if !tenant.Visible(actor, target.CompanyID) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	if err := s.repo.DeleteByUsername(ctx, username); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

package users

import (
	"context"
	"fmt"

	"github.com/budunsigorta/backend/pkg/config"
	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/security"
)

// EnsureBootstrapAdmin creates the initial admin account when no admin
// exists yet. It is a no-op unless a bootstrap password is configured, so a
// fresh deployment never ships a well-known credential.
func EnsureBootstrapAdmin(ctx context.Context, repo *Repository, cfg *config.Config, logg *logger.Logger) error {
	if cfg.Bootstrap.AdminPassword == "" {
		return nil
	}

	count, err := repo.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := security.HashPassword(cfg.Bootstrap.AdminPassword, cfg.Password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	user, err := repo.Create(ctx, CreateUserDTO{
		Username:     cfg.Bootstrap.AdminUsername,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	if logg != nil {
		ctx = logg.WithUserID(ctx, user.ID.String())
		logg.Info(ctx, "bootstrap admin account created")
	}
	return nil
}

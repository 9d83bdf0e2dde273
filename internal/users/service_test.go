package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/budunsigorta/backend/pkg/config"
	pkgerrors "github.com/budunsigorta/backend/pkg/errors"
	"github.com/budunsigorta/backend/pkg/security"
	"github.com/budunsigorta/backend/pkg/tenant"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(newTestDB(t))
	svc, err := NewService(ServiceParams{Repo: repo, PasswordConfig: testPasswordConfig()})
	require.NoError(t, err)
	return svc, repo
}

func TestServiceCreateHashesPassword(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	admin := tenant.Actor{UserID: uuid.New(), Username: "admin", IsAdmin: true}

	dto, err := svc.Create(ctx, admin, CreateUserRequest{Username: "Fatma", Password: "gizli-sifre"})
	require.NoError(t, err)
	require.Equal(t, "fatma", dto.Username, "usernames are normalized to lowercase")

	stored, err := repo.FindByUsername(ctx, "fatma")
	require.NoError(t, err)
	require.NotEqual(t, "gizli-sifre", stored.PasswordHash)

	ok, err := security.VerifyPassword("gizli-sifre", stored.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestServiceCreateDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	admin := tenant.Actor{UserID: uuid.New(), Username: "admin", IsAdmin: true}

	_, err := svc.Create(ctx, admin, CreateUserRequest{Username: "tekrar", Password: "sifre123"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, admin, CreateUserRequest{Username: "tekrar", Password: "sifre456"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestServiceCreateScopesCompanyForNonAdmin(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	ownCompany := uuid.New()
	otherCompany := uuid.New()
	actor := tenant.Actor{UserID: uuid.New(), Username: "mudur", CompanyID: &ownCompany}

	dto, err := svc.Create(ctx, actor, CreateUserRequest{
		Username:  "cirak",
		Password:  "sifre123",
		IsAdmin:   true, // must be ignored for non-admin creators
		CompanyID: &otherCompany,
	})
	require.NoError(t, err)
	require.NotNil(t, dto.CompanyID)
	require.Equal(t, ownCompany, *dto.CompanyID)

	stored, err := repo.FindByUsername(ctx, "cirak")
	require.NoError(t, err)
	require.False(t, stored.IsAdmin)
}

func TestServiceCreateGeneratesPasswordWhenEmpty(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	admin := tenant.Actor{UserID: uuid.New(), Username: "admin", IsAdmin: true}

	_, err := svc.Create(ctx, admin, CreateUserRequest{Username: "gecici"})
	require.NoError(t, err)

	stored, err := repo.FindByUsername(ctx, "gecici")
	require.NoError(t, err)
	require.NotEmpty(t, stored.PasswordHash)
}

func TestServiceDelete(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	companyA := uuid.New()
	companyB := uuid.New()
	mustCreateUser(t, repo, "hedef", false, &companyA)
	mustCreateUser(t, repo, "uzak", false, &companyB)

	actor := tenant.Actor{UserID: uuid.New(), Username: "mudur", CompanyID: &companyA}

	// cannot delete users outside the actor's company
	err := svc.Delete(ctx, actor, "uzak")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.NoError(t, svc.Delete(ctx, actor, "hedef"))

	err = svc.Delete(ctx, actor, "hedef")
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeleteSelfIsRejected(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	mustCreateUser(t, repo, "kendim", true, nil)
	actor := tenant.Actor{UserID: uuid.New(), Username: "kendim", IsAdmin: true}

	err := svc.Delete(ctx, actor, "kendim")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	cfg := &config.Config{Password: testPasswordConfig()}

	// no password configured: nothing happens
	require.NoError(t, EnsureBootstrapAdmin(ctx, repo, cfg, nil))
	count, err := repo.CountAdmins(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	cfg.Bootstrap = config.BootstrapConfig{AdminUsername: "admin", AdminPassword: "ilk-sifre"}
	require.NoError(t, EnsureBootstrapAdmin(ctx, repo, cfg, nil))

	admin, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)
	ok, err := security.VerifyPassword("ilk-sifre", admin.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)

	// second run is a no-op
	require.NoError(t, EnsureBootstrapAdmin(ctx, repo, cfg, nil))
	count, err = repo.CountAdmins(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

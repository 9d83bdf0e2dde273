package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/budunsigorta/backend/pkg/logger"
	"github.com/budunsigorta/backend/pkg/tenant"
)

type mapPermissionChecker map[string]bool

func (m mapPermissionChecker) HasPermission(_ context.Context, _ uuid.UUID, name string) (bool, error) {
	return m[name], nil
}

func permissionTestHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequirePermission(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test", Output: io.Discard})
	checker := mapPermissionChecker{"policies_add": true}
	mw := RequirePermission(checker, "policies_add", logg)(permissionTestHandler())

	actor := tenant.Actor{UserID: uuid.New(), Username: "satisci"}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/policies", nil)
	req = req.WithContext(WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	denied := RequirePermission(checker, "users_delete", logg)(permissionTestHandler())
	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePermissionAdminBypass(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test", Output: io.Discard})
	mw := RequirePermission(mapPermissionChecker{}, "users_delete", logg)(permissionTestHandler())

	admin := tenant.Actor{UserID: uuid.New(), Username: "admin", IsAdmin: true}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/x", nil)
	req = req.WithContext(WithActor(req.Context(), admin))
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePermissionRejectsUnauthenticated(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test", Output: io.Discard})
	mw := RequirePermission(mapPermissionChecker{}, "policies_view", logg)(permissionTestHandler())

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/policies", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

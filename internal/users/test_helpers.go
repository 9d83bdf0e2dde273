package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/budunsigorta/backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

func mustCreateUser(t *testing.T, repo *Repository, username string, isAdmin bool, companyID *uuid.UUID) *models.User {
	t.Helper()
	user, err := repo.Create(context.Background(), CreateUserDTO{
		Username:     username,
		PasswordHash: "hash",
		IsAdmin:      isAdmin,
		CompanyID:    companyID,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/opencertify/certify/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Address{},
		&models.Company{},
		&models.CustomerProfile{},
		&models.ProductCategory{},
		&models.RawMaterial{},
		&models.Application{},
		&models.ApplicationCompanyInfo{},
		&models.ApplicationSupplyChainPartner{},
		&models.ApplicationProduct{},
		&models.ApplicationEvent{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// createTestUser inserts a user with the given role. Password is the username.
func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	hash, err := HashPassword(username)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

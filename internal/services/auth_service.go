package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/opencertify/certify/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginResult is returned to a successfully authenticated client.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ErrInvalidCredentials is returned for an unknown username or wrong password.
// The two cases are deliberately indistinguishable to the client.
var ErrInvalidCredentials = fmt.Errorf("unable to log in with provided credentials")

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies the credentials and returns the user's persistent API token,
// creating one on first login.
func Login(db *gorm.DB, username, password string) (*LoginResult, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	var token models.AuthToken
	err := db.Where("user_id = ?", user.ID).First(&token).Error
	if err == gorm.ErrRecordNotFound {
		token = models.AuthToken{
			Key:    newTokenKey(),
			UserID: user.ID,
		}
		err = db.Create(&token).Error
	}
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token.Key,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// Logout deletes the token so the key can no longer authenticate.
func Logout(db *gorm.DB, tokenKey string) error {
	// Map condition so "key" is quoted correctly on every dialect.
	return db.Where(map[string]interface{}{"key": tokenKey}).Delete(&models.AuthToken{}).Error
}

// Authenticate resolves a token key to its user.
func Authenticate(db *gorm.DB, tokenKey string) (*models.User, error) {
	var token models.AuthToken
	err := db.Preload("User").Where(map[string]interface{}{"key": tokenKey}).First(&token).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invalid token")
		}
		return nil, err
	}
	return &token.User, nil
}

// newTokenKey generates a 40-char hex token key.
func newTokenKey() string {
	a := uuid.New()
	b := uuid.New()
	return (strings.ReplaceAll(a.String(), "-", "") + strings.ReplaceAll(b.String(), "-", ""))[:40]
}

// DetectRole infers a role from username substrings. This mirrors the legacy
// demo convention (usernames containing "cservice" or "reviewer") and is used
// only when seeding users without an explicit role; request-path authorization
// always reads the persisted role column.
func DetectRole(username string) string {
	lower := strings.ToLower(username)
	switch {
	case strings.Contains(lower, "cservice"):
		return models.RoleCService
	case strings.Contains(lower, "reviewer"):
		return models.RoleReviewer
	default:
		return models.RoleCustomer
	}
}

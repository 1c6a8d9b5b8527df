package services

import (
	"fmt"
	"strings"

	"github.com/opencertify/certify/internal/models"
	"gorm.io/gorm"
)

// CustomerProfileInput is the create-profile request body.
type CustomerProfileInput struct {
	CompanyID   uint64
	FirstName   string
	LastName    string
	Email       string
	Username    string
	PhoneNumber string
}

// CustomerProfileResult mirrors the create-profile success response: the new
// profile, the created user, and the company it was attached to.
type CustomerProfileResult struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
	CompanyID   uint64 `json:"company_id"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	Message     string `json:"message"`
}

// ProfileValidationError is a rejected create-profile input (missing fields,
// unknown company, duplicate username/email).
type ProfileValidationError struct {
	Message string
}

func (e *ProfileValidationError) Error() string {
	return e.Message
}

func profileInvalid(format string, args ...interface{}) error {
	return &ProfileValidationError{Message: fmt.Sprintf(format, args...)}
}

// CreateCustomerProfile creates the user account and its customer profile in
// one transaction. The user gets the customer role and, matching the legacy
// onboarding flow, an initial password equal to the username.
func CreateCustomerProfile(db *gorm.DB, input CustomerProfileInput) (*CustomerProfileResult, error) {
	if strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Username) == "" {
		return nil, profileInvalid("Please fill in all required fields")
	}

	var company models.Company
	if err := db.First(&company, input.CompanyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, profileInvalid("Company with this ID does not exist.")
		}
		return nil, err
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, profileInvalid("A user with this username already exists.")
	}
	if err := db.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, profileInvalid("A user with this email already exists.")
	}

	hash, err := HashPassword(input.Username)
	if err != nil {
		return nil, err
	}

	var result *CustomerProfileResult
	err = db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Username:     input.Username,
			Email:        input.Email,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			PasswordHash: hash,
			Role:         models.RoleCustomer,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		profile := models.CustomerProfile{
			UserID:      user.ID,
			CompanyID:   company.ID,
			PhoneNumber: input.PhoneNumber,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}

		result = &CustomerProfileResult{
			ID:          profile.ID,
			UserID:      user.ID,
			Username:    user.Username,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			Company:     company.Name,
			CompanyID:   company.ID,
			PhoneNumber: profile.PhoneNumber,
			Role:        user.Role,
			Message:     fmt.Sprintf("User %q created successfully with Customer role", user.Username),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListCustomerProfiles returns all profiles with user and company preloaded,
// optionally filtered by company.
func ListCustomerProfiles(db *gorm.DB, companyID uint64) ([]models.CustomerProfile, error) {
	var profiles []models.CustomerProfile
	query := db.Preload("User").Preload("Company")
	if companyID != 0 {
		query = query.Where("company_id = ?", companyID)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetCustomerProfile loads one profile with user and company.
func GetCustomerProfile(db *gorm.DB, id uint64) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := db.Preload("User").Preload("Company").First(&profile, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &profile, nil
}

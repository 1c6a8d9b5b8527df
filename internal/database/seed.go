package database

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/opencertify/certify/data"
	"github.com/opencertify/certify/internal/models"
	"github.com/opencertify/certify/internal/services"
	"gorm.io/gorm"
)

type seedCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// SeedCatalog loads the embedded product category and raw material codes.
// Existing codes are left untouched, so the seed is safe to run on every
// startup.
func SeedCatalog(db *gorm.DB) error {
	var categories []seedCode
	if err := json.Unmarshal(data.ProductCategoriesJSON, &categories); err != nil {
		return fmt.Errorf("decode product category seed: %w", err)
	}
	for _, c := range categories {
		var count int64
		if err := db.Model(&models.ProductCategory{}).Where("code = ?", c.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		category := models.ProductCategory{Code: c.Code, Description: c.Description, IsActive: true}
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("seed category %s: %w", c.Code, err)
		}
	}

	var materials []seedCode
	if err := json.Unmarshal(data.RawMaterialsJSON, &materials); err != nil {
		return fmt.Errorf("decode raw material seed: %w", err)
	}
	for _, m := range materials {
		var count int64
		if err := db.Model(&models.RawMaterial{}).Where("code = ?", m.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		material := models.RawMaterial{Code: m.Code, Description: m.Description, IsActive: true}
		if err := db.Create(&material).Error; err != nil {
			return fmt.Errorf("seed material %s: %w", m.Code, err)
		}
	}

	return nil
}

// SeedDemoUsers creates the three demo accounts (customer, cservice,
// reviewer) with password equal to the username, plus one demo company for
// the profile form. Intended for local development only.
func SeedDemoUsers(db *gorm.DB) error {
	for _, username := range []string{"customer", "cservice", "reviewer"} {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		hash, err := services.HashPassword(username)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: hash,
			Role:         services.DetectRole(username),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", username, err)
		}
		log.Printf("Seeded demo user %q with role %q", user.Username, user.Role)
	}

	var companies int64
	if err := db.Model(&models.Company{}).Count(&companies).Error; err != nil {
		return err
	}
	if companies == 0 {
		if _, err := services.CreateCompany(db, "Acme Certification Demo Co", nil); err != nil {
			return fmt.Errorf("seed demo company: %w", err)
		}
	}

	return nil
}

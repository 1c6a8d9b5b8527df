package services

import (
	"fmt"

	"github.com/opencertify/certify/internal/models"
	"gorm.io/gorm"
)

// CompanyOption is the id/name pair the customer-profile form dropdown needs.
type CompanyOption struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ListCompanies returns all companies as selectable options, ordered by name.
func ListCompanies(db *gorm.DB) ([]CompanyOption, error) {
	var companies []models.Company
	if err := db.Order("name").Find(&companies).Error; err != nil {
		return nil, err
	}

	options := make([]CompanyOption, 0, len(companies))
	for _, company := range companies {
		options = append(options, CompanyOption{ID: company.ID, Name: company.Name})
	}
	return options, nil
}

// GetCompany loads one company with its address.
func GetCompany(db *gorm.DB, id uint64) (*models.Company, error) {
	var company models.Company
	err := db.Preload("Address").First(&company, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &company, nil
}

// CreateCompany inserts a company, used by seeding and admin tooling.
func CreateCompany(db *gorm.DB, name string, address *models.Address) (*models.Company, error) {
	company := models.Company{Name: name}
	if address != nil {
		if err := db.Create(address).Error; err != nil {
			return nil, err
		}
		company.AddressID = &address.ID
	}
	if err := db.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

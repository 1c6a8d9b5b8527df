package services

import (
	"github.com/opencertify/certify/internal/models"
	"gorm.io/gorm"
)

// ListProductCategories returns the active product categories ordered by code.
func ListProductCategories(db *gorm.DB) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	err := db.Where("is_active = ?", true).Order("code").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ListRawMaterials returns the active raw materials ordered by code.
func ListRawMaterials(db *gorm.DB) ([]models.RawMaterial, error) {
	var materials []models.RawMaterial
	err := db.Where("is_active = ?", true).Order("code").Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

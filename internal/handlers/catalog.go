package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/services"
	"github.com/opencertify/certify/internal/utils"
	"gorm.io/gorm"
)

// CatalogHandler serves the reference catalogs backing the product form
// dropdowns.
type CatalogHandler struct {
	DB *gorm.DB
}

// ProductCategories handles GET /api/product-categories
// @Summary List product categories
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.ProductCategory
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /product-categories [get]
func (h *CatalogHandler) ProductCategories(c *fiber.Ctx) error {
	categories, err := services.ListProductCategories(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "catalog.categories")
	}
	return c.Status(fiber.StatusOK).JSON(categories)
}

// RawMaterials handles GET /api/raw-materials
// @Summary List raw materials
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.RawMaterial
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /raw-materials [get]
func (h *CatalogHandler) RawMaterials(c *fiber.Ctx) error {
	materials, err := services.ListRawMaterials(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "catalog.materials")
	}
	return c.Status(fiber.StatusOK).JSON(materials)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/services"
	"github.com/opencertify/certify/internal/utils"
	"gorm.io/gorm"
)

// CompanyHandler serves the company directory used when onboarding customers.
type CompanyHandler struct {
	DB *gorm.DB
}

// List handles GET /api/companies
// @Summary List companies
// @Description List all companies as id/name options for the profile form
// @Tags Companies
// @Produce json
// @Success 200 {array} services.CompanyOption
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	options, err := services.ListCompanies(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "company.list")
	}
	return c.Status(fiber.StatusOK).JSON(options)
}

// Get handles GET /api/companies/:id
// @Summary Get one company
// @Tags Companies
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} models.Company
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /companies/{id} [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "company.validation.input")
	}

	company, err := services.GetCompany(h.DB, id)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Company not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "company.get")
	}
	return c.Status(fiber.StatusOK).JSON(company)
}

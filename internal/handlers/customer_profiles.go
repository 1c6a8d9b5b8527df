package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/services"
	"github.com/opencertify/certify/internal/types"
	"github.com/opencertify/certify/internal/utils"
	"gorm.io/gorm"
)

// CustomerProfileHandler serves customer onboarding for support staff.
type CustomerProfileHandler struct {
	DB *gorm.DB
}

type customerProfileBody struct {
	CompanyID   types.FlexUint64 `json:"company_id"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Email       string           `json:"email"`
	Username    string           `json:"username"`
	PhoneNumber string           `json:"phone_number"`
}

// Create handles POST /api/customer-profiles
// @Summary Create a customer profile
// @Description Create a user account with the customer role and attach it to a company
// @Tags CustomerProfiles
// @Accept json
// @Produce json
// @Param body body customerProfileBody true "Profile"
// @Success 201 {object} services.CustomerProfileResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /customer-profiles [post]
func (h *CustomerProfileHandler) Create(c *fiber.Ctx) error {
	var body customerProfileBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "profile.validation.input")
	}

	result, err := services.CreateCustomerProfile(h.DB, services.CustomerProfileInput{
		CompanyID:   body.CompanyID.Uint64(),
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		Email:       body.Email,
		Username:    body.Username,
		PhoneNumber: body.PhoneNumber,
	})
	if err != nil {
		var verr *services.ProfileValidationError
		if errors.As(err, &verr) {
			return utils.ErrorResponse(c, verr.Message, fiber.StatusBadRequest, "profile.validation")
		}
		return utils.ErrorResponse(c, "Failed to create customer profile", fiber.StatusInternalServerError, "profile.create")
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// List handles GET /api/customer-profiles
// @Summary List customer profiles
// @Tags CustomerProfiles
// @Produce json
// @Param company_id query int false "Filter by company"
// @Success 200 {array} models.CustomerProfile
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /customer-profiles [get]
func (h *CustomerProfileHandler) List(c *fiber.Ctx) error {
	companyID := uint64(c.QueryInt("company_id", 0))
	profiles, err := services.ListCustomerProfiles(h.DB, companyID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "profile.list")
	}
	return c.Status(fiber.StatusOK).JSON(profiles)
}

// Get handles GET /api/customer-profiles/:id
// @Summary Get one customer profile
// @Tags CustomerProfiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} models.CustomerProfile
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /customer-profiles/{id} [get]
func (h *CustomerProfileHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "profile.validation.input")
	}

	profile, err := services.GetCustomerProfile(h.DB, id)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Customer profile not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "profile.get")
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

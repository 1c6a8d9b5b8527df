package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/draft"
	"github.com/opencertify/certify/internal/services"
	"github.com/opencertify/certify/internal/utils"
	"gorm.io/gorm"
)

// ApplicationHandler serves submitted applications.
type ApplicationHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/applications
// @Summary Submit an application payload directly
// @Description Accept a complete submission payload without going through the draft, applying the same validation and name normalization
// @Tags Applications
// @Accept json
// @Produce json
// @Param body body draft.Submission true "Application payload"
// @Success 201 {object} services.CreatedApplication
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var body draft.Submission
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "application.validation.input")
	}

	// A payload with no partners would slip past field validation, which
	// only inspects partners that exist.
	if len(body.Partners) == 0 {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "application.validation.input")
	}

	d := draft.FromSubmission(body)
	if err := draft.Validate(d); err != nil {
		return utils.ValidationErrorResponse(c, err.Error())
	}

	created, err := services.CreateApplication(h.DB, draft.Normalize(d))
	if err != nil {
		return utils.ErrorResponse(c, "Failed to create application. Please try again.", fiber.StatusInternalServerError, "application.create")
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// List handles GET /api/applications
// @Summary List applications
// @Description List submitted applications newest first, optionally filtered by status
// @Tags Applications
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, in_review, approved, rejected)
// @Success 200 {array} models.Application
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	apps, err := services.ListApplications(h.DB, status)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "application.list")
	}
	return c.Status(fiber.StatusOK).JSON(apps)
}

// Get handles GET /api/applications/:id
// @Summary Get one application
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} models.Application
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "application.validation.input")
	}

	app, err := services.GetApplication(h.DB, id)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Application not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "application.get")
	}
	return c.Status(fiber.StatusOK).JSON(app)
}

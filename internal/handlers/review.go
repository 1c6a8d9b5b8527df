package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/services"
	"github.com/opencertify/certify/internal/utils"
	"gorm.io/gorm"
)

// ReviewHandler serves the reviewer queue and status transitions.
type ReviewHandler struct {
	DB *gorm.DB
}

type statusUpdateBody struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
}

// Queue handles GET /api/review/applications
// @Summary List applications for review
// @Description List submitted applications for the review queue, optionally filtered by status
// @Tags Review
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, in_review, approved, rejected)
// @Success 200 {array} models.Application
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /review/applications [get]
func (h *ReviewHandler) Queue(c *fiber.Ctx) error {
	apps, err := services.ListApplications(h.DB, c.Query("status"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "review.list")
	}
	return c.Status(fiber.StatusOK).JSON(apps)
}

// UpdateStatus handles PATCH /api/review/applications/:id
// @Summary Update an application's review status
// @Description Transition an application between pending, in_review, approved and rejected. A rejection reason is stored only when rejecting.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param body body statusUpdateBody true "Status update"
// @Success 200 {object} models.Application
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /review/applications/{id} [patch]
func (h *ReviewHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "review.validation.input")
	}

	var body statusUpdateBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "review.validation.input")
	}

	app, err := services.UpdateApplicationStatus(h.DB, id, body.Status, body.RejectionReason)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Application not found")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "review.validation")
	}

	return c.Status(fiber.StatusOK).JSON(app)
}

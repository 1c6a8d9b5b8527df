package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/services"
	"github.com/opencertify/certify/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles login and logout routes
type AuthHandler struct {
	DB *gorm.DB
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Exchange username and password for an API token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "Credentials"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}
	if body.Username == "" || body.Password == "" {
		return utils.ErrorResponse(c, "Username and password are required", fiber.StatusBadRequest, "auth.validation.input")
	}

	result, err := services.Login(h.DB, body.Username, body.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "auth.credentials")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Invalidate the current API token
// @Tags Auth
// @Produce json
// @Success 204
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security TokenAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	key, ok := c.Locals("token").(string)
	if !ok || key == "" {
		return utils.ErrorResponse(c, "Authentication credentials were not provided.", fiber.StatusUnauthorized, "auth.token.missing")
	}

	if err := services.Logout(h.DB, key); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "logout")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

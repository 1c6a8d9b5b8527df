package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/opencertify/certify/internal/models"
	"github.com/opencertify/certify/internal/services"
	"github.com/opencertify/certify/internal/types"
	"gorm.io/gorm"
)

// Auth validates the "Authorization: Token <key>" header and stores the
// resolved user in the request locals.
func Auth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authentication credentials were not provided.",
				Type:    "auth.token.missing",
			}
		}

		key := strings.TrimSpace(strings.TrimPrefix(header, "Token "))
		if key == header || key == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid authorization header. Expected 'Token <key>'.",
				Type:    "auth.token.malformed",
			}
		}

		user, err := services.Authenticate(db, key)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid token.",
				Type:    "auth.token.invalid",
			}
		}

		c.Locals("user", user)
		c.Locals("token", key)
		return c.Next()
	}
}

// RequireRole rejects authenticated requests whose user holds none of the
// given roles. Must run after Auth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok || user == nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authentication credentials were not provided.",
				Type:    "auth.token.missing",
			}
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "You do not have permission to perform this action.",
			Type:    "auth.role.forbidden",
		}
	}
}
